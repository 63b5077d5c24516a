package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventtix/ticket-booking/internal/application"
	"github.com/eventtix/ticket-booking/pkg/response"
)

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

type notificationItem struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"bookingId"`
	Message    string    `json:"message"`
	NotifiedAt time.Time `json:"notifiedAt"`
}

// List GET /api/notifications?page&size (admin only)
func (h *NotificationHandler) List(c *gin.Context) {
	page, size := pageParams(c)

	logs, total, err := h.Svc.List(c.Request.Context(), page, size)
	if err != nil {
		h.Logger.WithError(err).Error("list notifications failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list notifications", nil)
		return
	}

	items := make([]notificationItem, 0, len(logs))
	for _, n := range logs {
		items = append(items, notificationItem{
			ID:         n.ID,
			BookingID:  n.BookingID,
			Message:    n.Message,
			NotifiedAt: n.NotifiedAt,
		})
	}
	response.Success(c, http.StatusOK, items, "notifications", response.PageMeta{Page: page, Size: size, TotalElements: total})
}
