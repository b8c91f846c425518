package workflow

import (
	"go.uber.org/zap"

	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/mq"
	"github.com/qs-lzh/cinema-booking/internal/service/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

type BookingWorkflow struct {
	BookingService domain.BookingService
	MQConn         *amqp.Connection
	Logger         *zap.Logger
}

func NewBookingWorkflow(bookingService domain.BookingService, mqConn *amqp.Connection, logger *zap.Logger) *BookingWorkflow {
	return &BookingWorkflow{
		BookingService: bookingService,
		MQConn:         mqConn,
		Logger:         logger,
	}
}

// BookTicket books the seat, then hands the confirmation off to the
// notification worker. The booking is already committed when publishing
// happens, so a broker failure is logged rather than surfaced.
func (w *BookingWorkflow) BookTicket(showtimeID uint, seatNumber int, userID string) (*model.Ticket, error) {
	ticket, err := w.BookingService.BookTicket(showtimeID, seatNumber, userID)
	if err != nil {
		return nil, err
	}

	if w.MQConn != nil {
		w.publishBooked(ticket)
	}
	return ticket, nil
}

func (w *BookingWorkflow) publishBooked(ticket *model.Ticket) {
	ch, err := mq.NewChannel(w.MQConn)
	if err != nil {
		w.Logger.Warn("failed to open channel for booking notification",
			zap.String("booking_id", ticket.BookingID), zap.Error(err))
		return
	}
	defer ch.Close()

	if err := mq.SendImmediateMessage(ch, mq.TicketBookedQueue,
		mq.TicketBookedMessage{
			BookingID:  ticket.BookingID,
			ShowtimeID: ticket.ShowtimeID,
			SeatNumber: ticket.SeatNumber,
			UserID:     ticket.UserID,
		}); err != nil {
		w.Logger.Warn("failed to publish booking notification",
			zap.String("booking_id", ticket.BookingID), zap.Error(err))
	}
}
