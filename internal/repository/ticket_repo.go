package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/cinema-booking/internal/model"
)

type TicketRepo interface {
	WithTx(tx *gorm.DB) TicketRepo
	Create(ticket *model.Ticket) error
	GetBySeat(showtimeID uint, seatNumber int) (*model.Ticket, error)
	GetByShowtimeID(showtimeID uint) ([]model.Ticket, error)
	CountByShowtimeID(showtimeID uint) (int64, error)
}

type ticketRepoGorm struct {
	db *gorm.DB
}

var _ TicketRepo = (*ticketRepoGorm)(nil)

func NewTicketRepoGorm(db *gorm.DB) *ticketRepoGorm {
	return &ticketRepoGorm{
		db: db,
	}
}

func (r *ticketRepoGorm) WithTx(tx *gorm.DB) TicketRepo {
	return &ticketRepoGorm{
		db: tx,
	}
}

func (r *ticketRepoGorm) Create(ticket *model.Ticket) error {
	ctx := context.Background()
	if err := gorm.G[model.Ticket](r.db).Create(ctx, ticket); err != nil {
		return err
	}
	return nil
}

func (r *ticketRepoGorm) GetBySeat(showtimeID uint, seatNumber int) (*model.Ticket, error) {
	ctx := context.Background()
	ticket, err := gorm.G[model.Ticket](r.db).
		Where(&model.Ticket{ShowtimeID: showtimeID, SeatNumber: seatNumber}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepoGorm) GetByShowtimeID(showtimeID uint) ([]model.Ticket, error) {
	ctx := context.Background()
	tickets, err := gorm.G[model.Ticket](r.db).Where(&model.Ticket{ShowtimeID: showtimeID}).Find(ctx)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepoGorm) CountByShowtimeID(showtimeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Ticket{}).Where("showtime_id = ?", showtimeID).Count(&count).Error
	return count, err
}
