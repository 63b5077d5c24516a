package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	handlers "github.com/eventtix/ticket-booking/internal/interface/http"
	"github.com/eventtix/ticket-booking/internal/interface/middleware"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

// NotificationModule wires the admin-only notification log listing.
// GET /api/notifications
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	JWT     *helpers.JWTManager
}

func NewNotificationModule(h *handlers.NotificationHandler, jwt *helpers.JWTManager) *NotificationModule {
	return &NotificationModule{Handler: h, JWT: jwt}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleAdmin))
	{
		auth.GET("/notifications", m.Handler.List)
	}
}
