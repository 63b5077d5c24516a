package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/application"
	"github.com/eventtix/ticket-booking/internal/domain/entity"
	"github.com/eventtix/ticket-booking/internal/domain/repository"
	"github.com/eventtix/ticket-booking/pkg/response"
	"github.com/eventtix/ticket-booking/pkg/validation"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type eventRequest struct {
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"eventDate" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,gt=0,lte=100000"`
}

type eventItem struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	EventDate      time.Time `json:"eventDate"`
	Capacity       int       `json:"capacity"`
	AvailableSeats int       `json:"availableSeats"`
}

func toEventItem(e *entity.Event) eventItem {
	return eventItem{
		ID:             e.ID,
		Name:           e.Name,
		Description:    e.Description,
		EventDate:      e.EventDate,
		Capacity:       e.Capacity,
		AvailableSeats: e.AvailableSeats,
	}
}

func eventID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid event id", nil)
		return 0, false
	}
	return id, true
}

// List GET /api/events?page&size&sort
func (h *EventHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	sort := c.DefaultQuery("sort", "id")

	events, total, err := h.Svc.List(c.Request.Context(), page, size, sort)
	if err != nil {
		h.Logger.WithError(err).Error("list events failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list events", nil)
		return
	}

	items := make([]eventItem, 0, len(events))
	for i := range events {
		items = append(items, toEventItem(&events[i]))
	}
	response.Success(c, http.StatusOK, items, "events", response.PageMeta{Page: page, Size: size, TotalElements: total})
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	e, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "event not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("event_id", id).Error("get event failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to get event", nil)
		return
	}
	response.Success(c, http.StatusOK, toEventItem(e), "event", nil)
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	e, err := h.Svc.Create(c.Request.Context(), application.EventInput{
		Name:        req.Name,
		Description: req.Description,
		EventDate:   req.EventDate,
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.Logger.WithError(err).Error("create event failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create event", nil)
		return
	}
	response.Success(c, http.StatusCreated, toEventItem(e), "event created successfully", nil)
}

// Update PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	e, err := h.Svc.Update(c.Request.Context(), id, application.EventInput{
		Name:        req.Name,
		Description: req.Description,
		EventDate:   req.EventDate,
		Capacity:    req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "event not found", nil)
		case errors.Is(err, repository.ErrCapacityBelowBooked):
			response.Error[any](c, http.StatusBadRequest, "capacity below booked seats", nil)
		default:
			h.Logger.WithError(err).WithField("event_id", id).Error("update event failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update event", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toEventItem(e), "event updated successfully", nil)
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := eventID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "event not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("event_id", id).Error("delete event failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to delete event", nil)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "event deleted successfully", nil)
}

// Search GET /api/events/search?q&size
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("event search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
