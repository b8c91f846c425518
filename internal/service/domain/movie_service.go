package domain

import (
	"errors"

	"gorm.io/gorm"

	"github.com/qs-lzh/cinema-booking/internal/cache"
	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/repository"
	"github.com/qs-lzh/cinema-booking/internal/service"
	"github.com/qs-lzh/cinema-booking/internal/timeutil"
)

// MovieUpdate carries the replacement field values for a movie. Title is
// only accepted when it matches the current title; movies are looked up
// by title externally, so renames are always rejected.
type MovieUpdate struct {
	Title       string
	Genre       string
	Duration    int
	Rating      float64
	ReleaseYear int
}

type MovieService interface {
	CreateMovie(movie *model.Movie) error
	GetMovieByID(id uint) (*model.Movie, error)
	GetMovieByTitle(title string) (*model.Movie, error)
	GetAllMovies() ([]model.Movie, error)
	UpdateMovie(title string, data MovieUpdate) (*model.Movie, error)
	DeleteMovie(title string) error
}

type movieService struct {
	db              Transactor
	repo            repository.MovieRepo
	tickets         repository.TicketRepo
	showtimeService ShowtimeService
	cache           *cache.RedisCache
}

var _ MovieService = (*movieService)(nil)

func NewMovieService(db Transactor, movieRepo repository.MovieRepo, ticketRepo repository.TicketRepo, showtimeService ShowtimeService, cache *cache.RedisCache) *movieService {
	return &movieService{
		db:              db,
		repo:            movieRepo,
		tickets:         ticketRepo,
		showtimeService: showtimeService,
		cache:           cache,
	}
}

func (s *movieService) CreateMovie(movie *model.Movie) error {
	_, err := s.repo.GetByTitle(movie.Title)
	if err == nil {
		return service.ErrDuplicateTitle
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.repo.Create(movie); err != nil {
		// unique index on title backs up the pre-check under races
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return service.ErrDuplicateTitle
		}
		return err
	}

	s.invalidateCatalog()
	return nil
}

func (s *movieService) GetMovieByID(id uint) (*model.Movie, error) {
	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (s *movieService) GetMovieByTitle(title string) (*model.Movie, error) {
	movie, err := s.repo.GetByTitle(title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrMovieNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (s *movieService) GetAllMovies() ([]model.Movie, error) {
	if s.cache != nil {
		if movies, err := s.cache.GetMovies(); err == nil && movies != nil {
			return movies, nil
		}
	}

	movies, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetMovies(movies)
	}
	return movies, nil
}

// UpdateMovie replaces a movie's fields, rescheduling its future showtimes
// first when the duration grows. The pre-check pass, the reschedule pass
// and the movie row update all run inside one transaction, so a conflict
// anywhere leaves every showtime untouched.
func (s *movieService) UpdateMovie(title string, data MovieUpdate) (*model.Movie, error) {
	var updated *model.Movie
	err := s.db.Transaction(func(tx *gorm.DB) error {
		movie, err := s.repo.WithTx(tx).GetByTitle(title)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrMovieNotFound
			}
			return err
		}

		if data.Title != "" && data.Title != movie.Title {
			return service.ErrRenameNotAllowed
		}

		if data.Duration > movie.Duration {
			if err := s.rescheduleShowtimes(tx, movie, data.Duration); err != nil {
				return err
			}
		}

		movie.Genre = data.Genre
		movie.Duration = data.Duration
		movie.Rating = data.Rating
		movie.ReleaseYear = data.ReleaseYear
		if err := s.repo.WithTx(tx).Update(movie); err != nil {
			return err
		}
		updated = movie
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog()
	return updated, nil
}

// rescheduleShowtimes recomputes end times for every future showtime of
// the movie at the new duration. All hypothetical intervals are probed
// for conflicts before any showtime is touched; a single conflict aborts
// the whole batch.
func (s *movieService) rescheduleShowtimes(tx *gorm.DB, movie *model.Movie, newDuration int) error {
	showtimes, err := s.showtimeService.GetShowtimesByMovieIDTx(tx, movie.ID)
	if err != nil {
		return err
	}

	future := futureShowtimes(showtimes)
	if len(future) == 0 {
		return nil
	}

	for _, st := range future {
		newEnd := timeutil.AddMinutes(st.StartTime, newDuration)
		conflict, err := s.showtimeService.FindOverlapTx(tx, st.Theater, st.StartTime, newEnd, st.ID)
		if err != nil {
			return err
		}
		if conflict != nil {
			return service.ErrScheduleOverlap
		}
	}

	for _, st := range future {
		upd := ShowtimeUpdate{
			MovieID:   movie.ID,
			Theater:   st.Theater,
			StartTime: st.StartTime,
			EndTime:   timeutil.AddMinutes(st.StartTime, newDuration),
			Price:     st.Price,
			Duration:  newDuration,
		}
		// the probe above already proved the interval conflict-free
		if _, err := s.showtimeService.UpdateShowtimeTx(tx, st.ID, upd, UpdateOptions{SkipOverlapCheck: true}); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMovie removes a movie and its future showtimes, refusing when any
// future showtime has sold tickets. Past showtime rows fall to the
// database-level cascade on the movie foreign key.
func (s *movieService) DeleteMovie(title string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		movie, err := s.repo.WithTx(tx).GetByTitle(title)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrMovieNotFound
			}
			return err
		}

		showtimes, err := s.showtimeService.GetShowtimesByMovieIDTx(tx, movie.ID)
		if err != nil {
			return err
		}
		future := futureShowtimes(showtimes)

		for _, st := range future {
			sold, err := s.tickets.WithTx(tx).CountByShowtimeID(st.ID)
			if err != nil {
				return err
			}
			if sold > 0 {
				return service.ErrPendingSales
			}
		}

		for _, st := range future {
			if err := s.showtimeService.DeleteShowtimeTx(tx, st.ID); err != nil {
				return err
			}
		}

		rows, err := s.repo.WithTx(tx).Delete(movie.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return service.ErrMovieNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCatalog()
	return nil
}

func (s *movieService) invalidateCatalog() {
	if s.cache != nil {
		_ = s.cache.InvalidateMovies()
	}
}

func futureShowtimes(showtimes []model.Showtime) []model.Showtime {
	future := make([]model.Showtime, 0, len(showtimes))
	for _, st := range showtimes {
		if !timeutil.IsPast(st.EndTime) {
			future = append(future, st)
		}
	}
	return future
}
