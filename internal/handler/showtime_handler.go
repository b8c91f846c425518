package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/service/domain"
	"github.com/qs-lzh/cinema-booking/internal/validator"
)

type ShowtimeHandler struct {
	service domain.ShowtimeService
	logger  *zap.Logger
}

func NewShowtimeHandler(service domain.ShowtimeService, logger *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ShowtimeHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/", h.create)
	rg.GET("/:showtimeId", h.get)
	rg.POST("/update/:showtimeId", h.update)
	rg.DELETE("/:showtimeId", h.delete)
}

func (h *ShowtimeHandler) create(c *gin.Context) {
	var req validator.ShowtimeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validator.ValidateShowtime(req); err != nil {
		respondValidationError(c, err)
		return
	}

	showtime, err := h.service.CreateShowtime(&model.Showtime{
		MovieID:   req.MovieID,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, showtime)
}

func (h *ShowtimeHandler) get(c *gin.Context) {
	id, ok := parseShowtimeID(c)
	if !ok {
		return
	}

	showtime, err := h.service.GetShowtimeByID(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, showtime)
}

func (h *ShowtimeHandler) update(c *gin.Context) {
	id, ok := parseShowtimeID(c)
	if !ok {
		return
	}

	var req validator.ShowtimeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validator.ValidateShowtime(req); err != nil {
		respondValidationError(c, err)
		return
	}

	showtime, err := h.service.UpdateShowtime(id, domain.ShowtimeUpdate{
		MovieID:   req.MovieID,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	}, domain.UpdateOptions{})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, showtime)
}

func (h *ShowtimeHandler) delete(c *gin.Context) {
	id, ok := parseShowtimeID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteShowtime(id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

func parseShowtimeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("showtimeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid showtime id"})
		return 0, false
	}
	return uint(id), true
}
