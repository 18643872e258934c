package entities

// Room is a bookable room as returned by the catalog endpoints.
type Room struct {
	ID            int     `json:"id"`
	RoomNumber    string  `json:"roomNumber"`
	RoomTypeName  string  `json:"roomTypeName"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"pricePerNight"`
	Capacity      int     `json:"capacity"`
	IsAvailable   bool    `json:"isAvailable"`
}

type RoomType struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"pricePerNight"`
	Capacity      int     `json:"capacity"`
	ImageURL      string  `json:"imageUrl"`
}

// RoomSearchRequest maps onto the CheckInDate/CheckOutDate/roomTypeId query.
type RoomSearchRequest struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	RoomTypeID   int    `json:"roomTypeId"`
	PageNumber   int    `json:"pageNumber,omitempty"`
}

type RoomSearchResponse struct {
	Rooms       []Room `json:"rooms"`
	TotalCount  int    `json:"totalCount"`
	PageNumber  int    `json:"pageNumber"`
	TotalPages  int    `json:"totalPages"`
	HasPrevious bool   `json:"hasPrevious"`
	HasNext     bool   `json:"hasNext"`
}
