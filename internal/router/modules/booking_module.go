package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/eventtix/ticket-booking/internal/domain/entity"
	handlers "github.com/eventtix/ticket-booking/internal/interface/http"
	"github.com/eventtix/ticket-booking/internal/interface/middleware"
	"github.com/eventtix/ticket-booking/pkg/helpers"
)

// BookingModule wires booking routes, restricted to the user role.
// POST /api/bookings, GET /api/bookings
type BookingModule struct {
	Handler *handlers.BookingHandler
	JWT     *helpers.JWTManager
}

func NewBookingModule(h *handlers.BookingHandler, jwt *helpers.JWTManager) *BookingModule {
	return &BookingModule{Handler: h, JWT: jwt}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleUser))
	{
		auth.POST("/bookings", m.Handler.Book)
		auth.GET("/bookings", m.Handler.List)
	}
}
