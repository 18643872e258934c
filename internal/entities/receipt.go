package entities

// ReceiptData feeds the booking receipt text, email and SMS.
type ReceiptData struct {
	BookingID      int
	GuestName      string
	GuestEmail     string
	GuestPhone     string
	RoomNumber     string
	RoomTypeName   string
	CheckIn        string
	CheckOut       string
	NumberOfNights int
	TotalCost      float64
	Status         BookingStatus
	BookedOn       string
}
