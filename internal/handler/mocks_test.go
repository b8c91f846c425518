package handler

import (
	"time"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/service/domain"
)

type MockMovieService struct {
	mock.Mock
}

var _ domain.MovieService = (*MockMovieService)(nil)

func (m *MockMovieService) CreateMovie(movie *model.Movie) error {
	args := m.Called(movie)
	return args.Error(0)
}

func (m *MockMovieService) GetMovieByID(id uint) (*model.Movie, error) {
	args := m.Called(id)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MockMovieService) GetMovieByTitle(title string) (*model.Movie, error) {
	args := m.Called(title)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MockMovieService) GetAllMovies() ([]model.Movie, error) {
	args := m.Called()
	movies, _ := args.Get(0).([]model.Movie)
	return movies, args.Error(1)
}

func (m *MockMovieService) UpdateMovie(title string, data domain.MovieUpdate) (*model.Movie, error) {
	args := m.Called(title, data)
	movie, _ := args.Get(0).(*model.Movie)
	return movie, args.Error(1)
}

func (m *MockMovieService) DeleteMovie(title string) error {
	args := m.Called(title)
	return args.Error(0)
}

type MockShowtimeService struct {
	mock.Mock
}

var _ domain.ShowtimeService = (*MockShowtimeService)(nil)

func (m *MockShowtimeService) CreateShowtime(showtime *model.Showtime) (*model.Showtime, error) {
	args := m.Called(showtime)
	st, _ := args.Get(0).(*model.Showtime)
	return st, args.Error(1)
}

func (m *MockShowtimeService) GetShowtimeByID(showtimeID uint) (*model.Showtime, error) {
	args := m.Called(showtimeID)
	st, _ := args.Get(0).(*model.Showtime)
	return st, args.Error(1)
}

func (m *MockShowtimeService) GetShowtimesByMovieID(movieID uint) ([]model.Showtime, error) {
	args := m.Called(movieID)
	sts, _ := args.Get(0).([]model.Showtime)
	return sts, args.Error(1)
}

func (m *MockShowtimeService) GetShowtimesByMovieIDTx(tx *gorm.DB, movieID uint) ([]model.Showtime, error) {
	args := m.Called(tx, movieID)
	sts, _ := args.Get(0).([]model.Showtime)
	return sts, args.Error(1)
}

func (m *MockShowtimeService) FindOverlapTx(tx *gorm.DB, theater string, start, end time.Time, excludeID uint) (*model.Showtime, error) {
	args := m.Called(tx, theater, start, end, excludeID)
	st, _ := args.Get(0).(*model.Showtime)
	return st, args.Error(1)
}

func (m *MockShowtimeService) UpdateShowtime(showtimeID uint, upd domain.ShowtimeUpdate, opts domain.UpdateOptions) (*model.Showtime, error) {
	args := m.Called(showtimeID, upd, opts)
	st, _ := args.Get(0).(*model.Showtime)
	return st, args.Error(1)
}

func (m *MockShowtimeService) UpdateShowtimeTx(tx *gorm.DB, showtimeID uint, upd domain.ShowtimeUpdate, opts domain.UpdateOptions) (*model.Showtime, error) {
	args := m.Called(tx, showtimeID, upd, opts)
	st, _ := args.Get(0).(*model.Showtime)
	return st, args.Error(1)
}

func (m *MockShowtimeService) DeleteShowtime(showtimeID uint) error {
	args := m.Called(showtimeID)
	return args.Error(0)
}

func (m *MockShowtimeService) DeleteShowtimeTx(tx *gorm.DB, showtimeID uint) error {
	args := m.Called(tx, showtimeID)
	return args.Error(0)
}

type MockTicketBooker struct {
	mock.Mock
}

var _ TicketBooker = (*MockTicketBooker)(nil)

func (m *MockTicketBooker) BookTicket(showtimeID uint, seatNumber int, userID string) (*model.Ticket, error) {
	args := m.Called(showtimeID, seatNumber, userID)
	ticket, _ := args.Get(0).(*model.Ticket)
	return ticket, args.Error(1)
}
