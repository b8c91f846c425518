package domain

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/cinema-booking/internal/cache"
	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/repository"
	"github.com/qs-lzh/cinema-booking/internal/service"
	"github.com/qs-lzh/cinema-booking/internal/timeutil"
)

// ShowtimeUpdate is a full replacement of a showtime's mutable fields.
// Duration overrides the target movie's duration when non-zero; only the
// movie duration cascade sets it.
type ShowtimeUpdate struct {
	MovieID   uint
	Theater   string
	StartTime time.Time
	EndTime   time.Time
	Price     float64
	Duration  int
}

// UpdateOptions controls showtime update behavior. SkipOverlapCheck is
// reserved for callers that already proved the new interval conflict-free,
// such as the duration cascade.
type UpdateOptions struct {
	SkipOverlapCheck bool
}

type ShowtimeService interface {
	CreateShowtime(showtime *model.Showtime) (*model.Showtime, error)
	GetShowtimeByID(showtimeID uint) (*model.Showtime, error)
	GetShowtimesByMovieID(movieID uint) ([]model.Showtime, error)
	GetShowtimesByMovieIDTx(tx *gorm.DB, movieID uint) ([]model.Showtime, error)
	FindOverlapTx(tx *gorm.DB, theater string, start, end time.Time, excludeID uint) (*model.Showtime, error)
	UpdateShowtime(showtimeID uint, upd ShowtimeUpdate, opts UpdateOptions) (*model.Showtime, error)
	UpdateShowtimeTx(tx *gorm.DB, showtimeID uint, upd ShowtimeUpdate, opts UpdateOptions) (*model.Showtime, error)
	DeleteShowtime(showtimeID uint) error
	DeleteShowtimeTx(tx *gorm.DB, showtimeID uint) error
}

type showtimeService struct {
	db      Transactor
	repo    repository.ShowtimeRepo
	movies  repository.MovieRepo
	tickets repository.TicketRepo
	cache   *cache.RedisCache
}

var _ ShowtimeService = (*showtimeService)(nil)

func NewShowtimeService(db Transactor, showtimeRepo repository.ShowtimeRepo, movieRepo repository.MovieRepo, ticketRepo repository.TicketRepo, cache *cache.RedisCache) *showtimeService {
	return &showtimeService{
		db:      db,
		repo:    showtimeRepo,
		movies:  movieRepo,
		tickets: ticketRepo,
		cache:   cache,
	}
}

func (s *showtimeService) CreateShowtime(showtime *model.Showtime) (*model.Showtime, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		movie, err := s.movies.WithTx(tx).GetByID(showtime.MovieID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrMovieNotFound
			}
			return err
		}

		if !timeutil.DurationMatches(showtime.StartTime, showtime.EndTime, movie.Duration) {
			return service.ErrDurationMismatch
		}

		overlap, err := s.repo.WithTx(tx).FindOverlapping(showtime.Theater, showtime.StartTime, showtime.EndTime, 0)
		if err != nil {
			return err
		}
		if overlap != nil {
			return service.ErrScheduleOverlap
		}

		return s.repo.WithTx(tx).Create(showtime)
	})
	if err != nil {
		return nil, err
	}
	return showtime, nil
}

func (s *showtimeService) GetShowtimeByID(showtimeID uint) (*model.Showtime, error) {
	if s.cache != nil {
		if showtime, err := s.cache.GetShowtime(showtimeID); err == nil && showtime != nil {
			return showtime, nil
		}
	}

	showtime, err := s.repo.GetByID(showtimeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrShowtimeNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetShowtime(showtime)
	}
	return showtime, nil
}

func (s *showtimeService) GetShowtimesByMovieID(movieID uint) ([]model.Showtime, error) {
	return s.repo.GetByMovieID(movieID)
}

func (s *showtimeService) GetShowtimesByMovieIDTx(tx *gorm.DB, movieID uint) ([]model.Showtime, error) {
	return s.repo.WithTx(tx).GetByMovieID(movieID)
}

func (s *showtimeService) FindOverlapTx(tx *gorm.DB, theater string, start, end time.Time, excludeID uint) (*model.Showtime, error) {
	return s.repo.WithTx(tx).FindOverlapping(theater, start, end, excludeID)
}

func (s *showtimeService) UpdateShowtime(showtimeID uint, upd ShowtimeUpdate, opts UpdateOptions) (*model.Showtime, error) {
	var updated *model.Showtime
	err := s.db.Transaction(func(tx *gorm.DB) error {
		showtime, err := s.UpdateShowtimeTx(tx, showtimeID, upd, opts)
		if err != nil {
			return err
		}
		updated = showtime
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateShowtimeTx re-validates the ended and sold-tickets guards on every
// call; callers may hold stale copies and those guards protect sold seats.
func (s *showtimeService) UpdateShowtimeTx(tx *gorm.DB, showtimeID uint, upd ShowtimeUpdate, opts UpdateOptions) (*model.Showtime, error) {
	showtime, err := s.repo.WithTx(tx).GetByID(showtimeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrShowtimeNotFound
		}
		return nil, err
	}

	if timeutil.IsPast(showtime.EndTime) {
		return nil, service.ErrShowtimeEnded
	}

	sold, err := s.tickets.WithTx(tx).CountByShowtimeID(showtimeID)
	if err != nil {
		return nil, err
	}
	if sold > 0 {
		return nil, service.ErrTicketsSold
	}

	movie, err := s.movies.WithTx(tx).GetByID(upd.MovieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrMovieNotFound
		}
		return nil, err
	}

	expectedDuration := upd.Duration
	if expectedDuration == 0 {
		expectedDuration = movie.Duration
	}
	if !timeutil.DurationMatches(upd.StartTime, upd.EndTime, expectedDuration) {
		return nil, service.ErrDurationMismatch
	}

	if !opts.SkipOverlapCheck {
		overlap, err := s.repo.WithTx(tx).FindOverlapping(upd.Theater, upd.StartTime, upd.EndTime, showtimeID)
		if err != nil {
			return nil, err
		}
		if overlap != nil {
			return nil, service.ErrScheduleOverlap
		}
	}

	showtime.MovieID = upd.MovieID
	showtime.Theater = upd.Theater
	showtime.StartTime = upd.StartTime
	showtime.EndTime = upd.EndTime
	showtime.Price = upd.Price
	if err := s.repo.WithTx(tx).Update(showtime); err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateShowtime(showtimeID)
	}
	return showtime, nil
}

func (s *showtimeService) DeleteShowtime(showtimeID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.DeleteShowtimeTx(tx, showtimeID)
	})
}

func (s *showtimeService) DeleteShowtimeTx(tx *gorm.DB, showtimeID uint) error {
	showtime, err := s.repo.WithTx(tx).GetByID(showtimeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.ErrShowtimeNotFound
		}
		return err
	}

	if timeutil.IsPast(showtime.EndTime) {
		return service.ErrShowtimeEnded
	}

	sold, err := s.tickets.WithTx(tx).CountByShowtimeID(showtimeID)
	if err != nil {
		return err
	}
	if sold > 0 {
		return service.ErrTicketsSold
	}

	rows, err := s.repo.WithTx(tx).Delete(showtimeID)
	if err != nil {
		return err
	}
	// zero rows means a concurrent delete won the race
	if rows == 0 {
		return service.ErrShowtimeNotFound
	}

	if s.cache != nil {
		_ = s.cache.InvalidateShowtime(showtimeID)
	}
	return nil
}
