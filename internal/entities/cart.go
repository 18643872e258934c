package entities

// AddRoomRequest is the payload of POST /api/Bookings/cart. Customer fields are
// only sent when the session knows them.
type AddRoomRequest struct {
	RoomID        int    `json:"roomId"`
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

type CartItem struct {
	RoomID         int     `json:"roomId"`
	RoomNumber     string  `json:"roomNumber"`
	RoomTypeName   string  `json:"roomTypeName"`
	PricePerNight  float64 `json:"pricePerNight"`
	CheckInDate    string  `json:"checkInDate"`
	CheckOutDate   string  `json:"checkOutDate"`
	NumberOfNights int     `json:"numberOfNights"`
	TotalCost      float64 `json:"totalCost"`
	CustomerName   string  `json:"customerName,omitempty"`
	CustomerEmail  string  `json:"customerEmail,omitempty"`
}

// CartState is either CartEmpty or CartOccupied. Callers type-switch on it.
type CartState interface {
	isCartState()
}

type CartEmpty struct {
	Message string `json:"message"`
}

type CartOccupied struct {
	Item CartItem `json:"item"`
}

func (CartEmpty) isCartState()    {}
func (CartOccupied) isCartState() {}

// CartItemOf returns the occupied item of s, if any.
func CartItemOf(s CartState) (CartItem, bool) {
	if occupied, ok := s.(CartOccupied); ok {
		return occupied.Item, true
	}
	return CartItem{}, false
}
