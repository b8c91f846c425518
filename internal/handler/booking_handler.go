package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/cinema-booking/internal/model"
	"github.com/qs-lzh/cinema-booking/internal/validator"
)

// TicketBooker reserves a single seat and returns the ticket with its
// booking receipt. Implemented by workflow.BookingWorkflow.
type TicketBooker interface {
	BookTicket(showtimeID uint, seatNumber int, userID string) (*model.Ticket, error)
}

type BookingHandler struct {
	booker TicketBooker
	logger *zap.Logger
}

func NewBookingHandler(booker TicketBooker, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		booker: booker,
		logger: logger,
	}
}

func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/", h.book)
}

func (h *BookingHandler) book(c *gin.Context) {
	var req validator.BookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := validator.ValidateBooking(req); err != nil {
		respondValidationError(c, err)
		return
	}

	ticket, err := h.booker.BookTicket(req.ShowtimeID, req.SeatNumber, req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookingId": ticket.BookingID})
}
