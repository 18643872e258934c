package entities

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusRejected  BookingStatus = "Rejected"
)

type Booking struct {
	ID                 int           `json:"id"`
	RoomID             int           `json:"roomId,omitempty"`
	UserID             string        `json:"userId,omitempty"`
	RoomNumber         string        `json:"roomNumber"`
	RoomType           string        `json:"roomType,omitempty"`
	RoomTypeName       string        `json:"roomTypeName"`
	CustomerName       string        `json:"customerName"`
	CustomerEmail      string        `json:"customerEmail"`
	CheckInDate        string        `json:"checkInDate"`
	CheckOutDate       string        `json:"checkOutDate"`
	NumberOfNights     int           `json:"numberOfNights"`
	TotalCost          float64       `json:"totalCost"`
	Status             BookingStatus `json:"status"`
	CreatedAt          string        `json:"createdAt"`
	ConfirmedAt        string        `json:"confirmedAt,omitempty"`
	CancelledAt        string        `json:"cancelledAt,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CancellationFee    float64       `json:"cancellationFee,omitempty"`
	RefundAmount       float64       `json:"refundAmount,omitempty"`
}

// BookingConfirmationRequest is consumed once by POST /api/Bookings/confirm.
// The cart itself travels with the session cookie.
type BookingConfirmationRequest struct {
	PaymentMethodID string   `json:"paymentMethodId"`
	TotalAmount     *float64 `json:"totalAmount,omitempty"`
}

type BookingConfirmationResponse struct {
	Message   string   `json:"message"`
	Booking   *Booking `json:"booking,omitempty"`
	BookingID int      `json:"bookingId,omitempty"`
	NextSteps []string `json:"nextSteps,omitempty"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}
