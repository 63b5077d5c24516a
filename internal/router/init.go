package router

import (
	"github.com/eventtix/ticket-booking/internal/application"
	"github.com/eventtix/ticket-booking/internal/container"
	pginfra "github.com/eventtix/ticket-booking/internal/infrastructure/postgres"
	handlers "github.com/eventtix/ticket-booking/internal/interface/http"
	"github.com/eventtix/ticket-booking/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	eventRepo := pginfra.NewEventRepository(pool)
	bookingRepo := pginfra.NewBookingRepository(pool, cfg.BookingMaxRetries, cfg.BookingRetryBackoff)
	notificationRepo := pginfra.NewNotificationLogRepository(pool)

	authSvc := application.NewAuthService(userRepo, jwt, logger)
	eventSvc := application.NewEventService(eventRepo, container.GetRedis(), cfg.EventCacheTTL, logger, container.GetES(), cfg.ESEventsIndex)
	notificationSvc := application.NewNotificationService(notificationRepo, container.GetRabbitPub(), logger)
	bookingSvc := application.NewBookingService(bookingRepo, notificationSvc, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(eventSvc, logger), jwt))
	r.Add(modules.NewBookingModule(handlers.NewBookingHandler(bookingSvc, logger), jwt))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(notificationSvc, logger), jwt))
}
