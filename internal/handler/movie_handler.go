package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/service/domain"
	"github.com/qs-lzh/cinema-booking/internal/validator"
)

type MovieHandler struct {
	service domain.MovieService
	logger  *zap.Logger
}

func NewMovieHandler(service domain.MovieService, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

func (h *MovieHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/", h.create)
	rg.GET("/all", h.list)
	rg.POST("/update/:movieTitle", h.update)
	rg.DELETE("/:movieTitle", h.delete)
}

func (h *MovieHandler) create(c *gin.Context) {
	var req validator.MovieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validator.ValidateMovie(req); err != nil {
		respondValidationError(c, err)
		return
	}

	movie := &model.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Rating:      req.Rating,
		ReleaseYear: req.ReleaseYear,
	}
	if err := h.service.CreateMovie(movie); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) list(c *gin.Context) {
	movies, err := h.service.GetAllMovies()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) update(c *gin.Context) {
	title := c.Param("movieTitle")

	var req validator.MovieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validator.ValidateMovie(req); err != nil {
		respondValidationError(c, err)
		return
	}

	movie, err := h.service.UpdateMovie(title, domain.MovieUpdate{
		Title:       req.Title,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Rating:      req.Rating,
		ReleaseYear: req.ReleaseYear,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) delete(c *gin.Context) {
	if err := h.service.DeleteMovie(c.Param("movieTitle")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}
