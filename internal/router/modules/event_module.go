package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	handlers "github.com/eventtix/ticket-booking/internal/interface/http"
	"github.com/eventtix/ticket-booking/internal/interface/middleware"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

// EventModule wires event routes.
// Public: GET /api/events, GET /api/events/:id, GET /api/events/search
// Admin: POST /api/events, PUT /api/events/:id, DELETE /api/events/:id
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rg.GET("/events", m.Handler.List)
	rg.GET("/events/search", m.Handler.Search)
	rg.GET("/events/:id", m.Handler.Get)

	admin := rg.Group("/")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("/events", m.Handler.Create)
		admin.PUT("/events/:id", m.Handler.Update)
		admin.DELETE("/events/:id", m.Handler.Delete)
	}
}
