package models

// Booking statuses reported by the API.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// DateLayout is the wire format of check-in and check-out dates.
const DateLayout = "2006-01-02"

// Booking is a reservation of a hotel (optionally a specific room) for a date range.
type Booking struct {
	ID           string  `json:"id"`
	HotelID      string  `json:"hotelId"`
	RoomID       string  `json:"roomId,omitempty"`
	UserID       string  `json:"userId"`
	CheckInDate  string  `json:"checkInDate"`
	CheckOutDate string  `json:"checkOutDate"`
	Status       string  `json:"status"`
	TotalPrice   float64 `json:"totalPrice"`
}

// Cancelled reports whether the booking no longer counts towards occupancy or revenue.
func (b Booking) Cancelled() bool {
	return b.Status == BookingCancelled
}
