package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/cinema-booking/internal/model"
)

type ShowtimeRepo interface {
	WithTx(tx *gorm.DB) ShowtimeRepo
	Create(showtime *model.Showtime) error
	GetByID(id uint) (*model.Showtime, error)
	GetByMovieID(movieID uint) ([]model.Showtime, error)
	// FindOverlapping returns the first showtime in theater whose open
	// interval intersects [start, end), excluding excludeID when non-zero.
	// Intervals that merely touch at a boundary do not intersect.
	FindOverlapping(theater string, start, end time.Time, excludeID uint) (*model.Showtime, error)
	Update(showtime *model.Showtime) error
	Delete(id uint) (int64, error)
}

type showtimeRepoGorm struct {
	db *gorm.DB
}

var _ ShowtimeRepo = (*showtimeRepoGorm)(nil)

func NewShowtimeRepoGorm(db *gorm.DB) *showtimeRepoGorm {
	return &showtimeRepoGorm{
		db: db,
	}
}

func (r *showtimeRepoGorm) WithTx(tx *gorm.DB) ShowtimeRepo {
	return &showtimeRepoGorm{
		db: tx,
	}
}

func (r *showtimeRepoGorm) Create(showtime *model.Showtime) error {
	ctx := context.Background()
	if err := gorm.G[model.Showtime](r.db).Create(ctx, showtime); err != nil {
		return err
	}
	return nil
}

func (r *showtimeRepoGorm) GetByID(id uint) (*model.Showtime, error) {
	ctx := context.Background()
	showtime, err := gorm.G[model.Showtime](r.db).Where(&model.Showtime{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (r *showtimeRepoGorm) GetByMovieID(movieID uint) ([]model.Showtime, error) {
	ctx := context.Background()
	showtimes, err := gorm.G[model.Showtime](r.db).Where(&model.Showtime{MovieID: movieID}).Find(ctx)
	if err != nil {
		return nil, err
	}
	return showtimes, nil
}

func (r *showtimeRepoGorm) FindOverlapping(theater string, start, end time.Time, excludeID uint) (*model.Showtime, error) {
	ctx := context.Background()
	query := gorm.G[model.Showtime](r.db).
		Where("theater = ? AND start_time < ? AND end_time > ?", theater, end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	showtime, err := query.First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &showtime, nil
}

func (r *showtimeRepoGorm) Update(showtime *model.Showtime) error {
	return r.db.Save(showtime).Error
}

func (r *showtimeRepoGorm) Delete(id uint) (int64, error) {
	res := r.db.Delete(&model.Showtime{}, id)
	return res.RowsAffected, res.Error
}
