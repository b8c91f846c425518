package mq

// Queue names and message definitions

// immediate queue from booking to the notification worker
// deliver message to notify the worker that a seat was booked
const (
	TicketBookedQueue = "booking.notification.booked.immediate"
)

type TicketBookedMessage struct {
	BookingID  string `json:"booking_id"`
	ShowtimeID uint   `json:"showtime_id"`
	SeatNumber int    `json:"seat_number"`
	UserID     string `json:"user_id"`
}
