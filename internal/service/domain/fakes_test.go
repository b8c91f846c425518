package domain

import (
	"database/sql"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/repository"
)

// fakeTx runs the closure immediately. Rollback behavior is covered by
// the services bailing out before any write when a check fails.
type fakeTx struct{}

func (fakeTx) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

// memStore backs the in-memory repositories. Ticket inserts enforce the
// same (showtime, seat) uniqueness the database index provides, so the
// concurrent booking tests exercise the real translation path.
type memStore struct {
	mu        sync.Mutex
	movies    map[uint]model.Movie
	showtimes map[uint]model.Showtime
	tickets   map[uint]model.Ticket
	nextID    uint
}

func newMemStore() *memStore {
	return &memStore{
		movies:    make(map[uint]model.Movie),
		showtimes: make(map[uint]model.Showtime),
		tickets:   make(map[uint]model.Ticket),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

type memMovieRepo struct{ s *memStore }

var _ repository.MovieRepo = (*memMovieRepo)(nil)

func (r *memMovieRepo) WithTx(tx *gorm.DB) repository.MovieRepo { return r }

func (r *memMovieRepo) Create(movie *model.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movies {
		if m.Title == movie.Title {
			return gorm.ErrDuplicatedKey
		}
	}
	if movie.ID == 0 {
		movie.ID = r.s.id()
	}
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *memMovieRepo) GetByID(id uint) (*model.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *memMovieRepo) GetByTitle(title string) (*model.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movies {
		if m.Title == title {
			copy := m
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memMovieRepo) ListAll() ([]model.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	movies := make([]model.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		movies = append(movies, m)
	}
	return movies, nil
}

func (r *memMovieRepo) Update(movie *model.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *memMovieRepo) Delete(id uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return 0, nil
	}
	delete(r.s.movies, id)
	return 1, nil
}

type memShowtimeRepo struct{ s *memStore }

var _ repository.ShowtimeRepo = (*memShowtimeRepo)(nil)

func (r *memShowtimeRepo) WithTx(tx *gorm.DB) repository.ShowtimeRepo { return r }

func (r *memShowtimeRepo) Create(showtime *model.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if showtime.ID == 0 {
		showtime.ID = r.s.id()
	}
	r.s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *memShowtimeRepo) GetByID(id uint) (*model.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showtimes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &st, nil
}

func (r *memShowtimeRepo) GetByMovieID(movieID uint) ([]model.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	showtimes := make([]model.Showtime, 0)
	for _, st := range r.s.showtimes {
		if st.MovieID == movieID {
			showtimes = append(showtimes, st)
		}
	}
	return showtimes, nil
}

func (r *memShowtimeRepo) FindOverlapping(theater string, start, end time.Time, excludeID uint) (*model.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.showtimes {
		if st.ID == excludeID || st.Theater != theater {
			continue
		}
		if st.StartTime.Before(end) && st.EndTime.After(start) {
			copy := st
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *memShowtimeRepo) Update(showtime *model.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.showtimes[showtime.ID] = *showtime
	return nil
}

func (r *memShowtimeRepo) Delete(id uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[id]; !ok {
		return 0, nil
	}
	delete(r.s.showtimes, id)
	return 1, nil
}

type memTicketRepo struct{ s *memStore }

var _ repository.TicketRepo = (*memTicketRepo)(nil)

func (r *memTicketRepo) WithTx(tx *gorm.DB) repository.TicketRepo { return r }

func (r *memTicketRepo) Create(ticket *model.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tickets {
		if t.ShowtimeID == ticket.ShowtimeID && t.SeatNumber == ticket.SeatNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if ticket.ID == 0 {
		ticket.ID = r.s.id()
	}
	r.s.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) GetBySeat(showtimeID uint, seatNumber int) (*model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tickets {
		if t.ShowtimeID == showtimeID && t.SeatNumber == seatNumber {
			copy := t
			return &copy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTicketRepo) GetByShowtimeID(showtimeID uint) ([]model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tickets := make([]model.Ticket, 0)
	for _, t := range r.s.tickets {
		if t.ShowtimeID == showtimeID {
			tickets = append(tickets, t)
		}
	}
	return tickets, nil
}

func (r *memTicketRepo) CountByShowtimeID(showtimeID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, t := range r.s.tickets {
		if t.ShowtimeID == showtimeID {
			count++
		}
	}
	return count, nil
}

type testEnv struct {
	store     *memStore
	movies    *memMovieRepo
	showtimes *memShowtimeRepo
	tickets   *memTicketRepo

	movieService    *movieService
	showtimeService *showtimeService
	bookingService  *bookingService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	movies := &memMovieRepo{s: store}
	showtimes := &memShowtimeRepo{s: store}
	tickets := &memTicketRepo{s: store}

	showtimeSvc := NewShowtimeService(fakeTx{}, showtimes, movies, tickets, nil)
	movieSvc := NewMovieService(fakeTx{}, movies, tickets, showtimeSvc, nil)
	bookingSvc := NewBookingService(fakeTx{}, showtimes, tickets)

	return &testEnv{
		store:           store,
		movies:          movies,
		showtimes:       showtimes,
		tickets:         tickets,
		movieService:    movieSvc,
		showtimeService: showtimeSvc,
		bookingService:  bookingSvc,
	}
}

func (e *testEnv) seedMovie(title string, duration int) *model.Movie {
	movie := &model.Movie{
		Title:       title,
		Genre:       "Sci-Fi",
		Duration:    duration,
		Rating:      8.8,
		ReleaseYear: 2010,
	}
	if err := e.movies.Create(movie); err != nil {
		panic(err)
	}
	return movie
}

func (e *testEnv) seedShowtime(movieID uint, theater string, start, end time.Time) *model.Showtime {
	showtime := &model.Showtime{
		MovieID:   movieID,
		Theater:   theater,
		StartTime: start,
		EndTime:   end,
		Price:     25,
	}
	if err := e.showtimes.Create(showtime); err != nil {
		panic(err)
	}
	return showtime
}

func (e *testEnv) seedTicket(showtimeID uint, seatNumber int, userID string) *model.Ticket {
	ticket := &model.Ticket{
		ShowtimeID: showtimeID,
		SeatNumber: seatNumber,
		UserID:     userID,
		BookingID:  "seeded-booking",
	}
	if err := e.tickets.Create(ticket); err != nil {
		panic(err)
	}
	return ticket
}
