package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/application"
	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
	"github.com/eventtix/ticket-booking/internal/interface/middleware"
	"github.com/eventtix/ticket-booking/pkg/response"
	"github.com/eventtix/ticket-booking/pkg/validation"
)

type BookingHandler struct {
	Svc    *application.BookingService
	Logger *logrus.Logger
}

func NewBookingHandler(svc *application.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

type bookingRequest struct {
	EventID      int64 `json:"eventId" binding:"required"`
	TicketsCount int   `json:"ticketsCount" binding:"required,gt=0"`
}

type bookingItem struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"eventId"`
	BookingDate  time.Time `json:"bookingDate"`
	TicketsCount int       `json:"ticketsCount"`
}

// principal rebuilds the authenticated user from the claims Auth put into the
// context. It is passed to the service explicitly, never read from globals.
func principal(c *gin.Context) *entity.User {
	return &entity.User{
		ID:       c.GetInt64(middleware.CtxUserIDKey),
		Username: c.GetString(middleware.CtxUsernameKey),
		Role:     c.GetString(middleware.CtxRoleKey),
	}
}

// Book POST /api/bookings
func (h *BookingHandler) Book(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	b, err := h.Svc.Book(c.Request.Context(), principal(c), req.EventID, req.TicketsCount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "event not found", nil)
		case errors.Is(err, repository.ErrInsufficientSeats):
			response.Error[any](c, http.StatusBadRequest, "not enough available seats", nil)
		case errors.Is(err, repository.ErrTxConflict):
			response.Error[any](c, http.StatusConflict, "booking conflict, please retry", nil)
		default:
			h.Logger.WithError(err).WithField("event_id", req.EventID).Error("booking failed")
			response.Error[any](c, http.StatusInternalServerError, "booking failed", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":           b.ID,
		"eventId":      b.EventID,
		"bookingDate":  b.BookingDate,
		"ticketsCount": b.TicketsCount,
	}, application.BookingConfirmation, nil)
}

// List GET /api/bookings?page&size
func (h *BookingHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	bookings, total, err := h.Svc.List(c.Request.Context(), page, size)
	if err != nil {
		h.Logger.WithError(err).Error("list bookings failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list bookings", nil)
		return
	}

	items := make([]bookingItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, bookingItem{
			ID:           b.ID,
			EventID:      b.EventID,
			BookingDate:  b.BookingDate,
			TicketsCount: b.TicketsCount,
		})
	}
	response.Success(c, http.StatusOK, items, "bookings", response.PageMeta{Page: page, Size: size, TotalElements: total})
}
