package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventtix/ticket-booking/internal/container"
	handlers "github.com/eventtix/ticket-booking/internal/interface/http"
	"github.com/eventtix/ticket-booking/internal/interface/middleware"
)

// AuthModule wires registration and login routes.
// Public: POST /api/auth/signup, POST /api/auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
