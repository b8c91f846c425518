package app

import (
	"github.com/qs-lzh/cinema-booking/config"
	"github.com/qs-lzh/cinema-booking/internal/cache"
	"github.com/qs-lzh/cinema-booking/internal/handler"
	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/mq"
	"github.com/qs-lzh/cinema-booking/internal/repository"
	"github.com/qs-lzh/cinema-booking/internal/service/domain"
	"github.com/qs-lzh/cinema-booking/internal/service/workflow"

	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config

	DB     *gorm.DB
	Cache  *cache.RedisCache
	Logger *zap.Logger
	MQConn *amqp.Connection

	MovieRepo    repository.MovieRepo
	ShowtimeRepo repository.ShowtimeRepo
	TicketRepo   repository.TicketRepo

	MovieService    domain.MovieService
	ShowtimeService domain.ShowtimeService
	BookingService  domain.BookingService

	BookingWorkflow      *workflow.BookingWorkflow
	NotificationWorkflow *workflow.NotificationWorkflow
}

func New(config *config.Config, db *gorm.DB, cache *cache.RedisCache, logger *zap.Logger, mqConn *amqp.Connection) *App {
	movieRepo := repository.NewMovieRepoGorm(db)
	showtimeRepo := repository.NewShowtimeRepoGorm(db)
	ticketRepo := repository.NewTicketRepoGorm(db)

	showtimeService := domain.NewShowtimeService(db, showtimeRepo, movieRepo, ticketRepo, cache)
	movieService := domain.NewMovieService(db, movieRepo, ticketRepo, showtimeService, cache)
	bookingService := domain.NewBookingService(db, showtimeRepo, ticketRepo)

	bookingWorkflow := workflow.NewBookingWorkflow(bookingService, mqConn, logger)
	notificationWorkflow := workflow.NewNotificationWorkflow(logger)

	return &App{
		Config:               config,
		DB:                   db,
		Cache:                cache,
		Logger:               logger,
		MQConn:               mqConn,
		MovieRepo:            movieRepo,
		ShowtimeRepo:         showtimeRepo,
		TicketRepo:           ticketRepo,
		MovieService:         movieService,
		ShowtimeService:      showtimeService,
		BookingService:       bookingService,
		BookingWorkflow:      bookingWorkflow,
		NotificationWorkflow: notificationWorkflow,
	}
}

func (app *App) Init() error {
	// migrate schema; the ticket unique index is part of it
	if err := app.DB.AutoMigrate(&model.Movie{}, &model.Showtime{}, &model.Ticket{}); err != nil {
		return err
	}

	if app.MQConn != nil {
		if err := mq.InitQueues(app.MQConn); err != nil {
			return err
		}
		if err := app.NotificationWorkflow.Start(app.MQConn); err != nil {
			return err
		}
	}

	return nil
}

func (app *App) Router() *gin.Engine {
	r := gin.Default()

	movieHandler := handler.NewMovieHandler(app.MovieService, app.Logger)
	showtimeHandler := handler.NewShowtimeHandler(app.ShowtimeService, app.Logger)
	bookingHandler := handler.NewBookingHandler(app.BookingWorkflow, app.Logger)

	movieHandler.Register(r.Group("/movies"))
	showtimeHandler.Register(r.Group("/showtimes"))
	bookingHandler.Register(r.Group("/bookings"))

	return r
}

func (app *App) Close() error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
