package domain

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/repository"
	"github.com/qs-lzh/cinema-booking/internal/service"
	"github.com/qs-lzh/cinema-booking/internal/timeutil"
)

type BookingService interface {
	BookTicket(showtimeID uint, seatNumber int, userID string) (*model.Ticket, error)
}

type bookingService struct {
	db        Transactor
	showtimes repository.ShowtimeRepo
	tickets   repository.TicketRepo
}

var _ BookingService = (*bookingService)(nil)

func NewBookingService(db Transactor, showtimeRepo repository.ShowtimeRepo, ticketRepo repository.TicketRepo) *bookingService {
	return &bookingService{
		db:        db,
		showtimes: showtimeRepo,
		tickets:   ticketRepo,
	}
}

// BookTicket reserves one seat for one showtime. The whole protocol runs
// in a single transaction: load the showtime, check it has not ended,
// probe the seat, insert the ticket. The seat probe is only a fast path;
// the unique index on (showtime_id, seat_number) decides races, and a
// constraint violation on insert surfaces as ErrSeatAlreadyBooked. Any
// failure rolls the transaction back before the error propagates, so no
// partial ticket state ever persists.
func (s *bookingService) BookTicket(showtimeID uint, seatNumber int, userID string) (*model.Ticket, error) {
	var ticket *model.Ticket
	err := s.db.Transaction(func(tx *gorm.DB) error {
		showtime, err := s.showtimes.WithTx(tx).GetByID(showtimeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrShowtimeNotFound
			}
			return err
		}

		if timeutil.IsPast(showtime.EndTime) {
			return service.ErrShowtimeEnded
		}

		if _, err := s.tickets.WithTx(tx).GetBySeat(showtimeID, seatNumber); err == nil {
			return service.ErrSeatAlreadyBooked
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		t := &model.Ticket{
			ShowtimeID: showtimeID,
			SeatNumber: seatNumber,
			UserID:     userID,
			BookingID:  uuid.NewString(),
		}
		if err := s.tickets.WithTx(tx).Create(t); err != nil {
			// another transaction committed this seat between our probe
			// and our insert
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return service.ErrSeatAlreadyBooked
			}
			return err
		}

		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
