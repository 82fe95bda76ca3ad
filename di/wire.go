//go:build wireinject
// +build wireinject

package di

import (
	"stagebook/config"
	"stagebook/infras/jwt"
	"stagebook/infras/kafka"
	"stagebook/infras/otel"
	"stagebook/infras/postgres"
	"stagebook/infras/redis"
	"stagebook/infras/s3"
	"stagebook/internal/notification"
	"stagebook/permissions"
	"stagebook/shared/cache"
	"stagebook/transport/http"
	"stagebook/transport/http/middleware"
	"stagebook/transport/http/router"

	"github.com/google/wire"

	bookingRepository "stagebook/internal/domains/booking/repository"
	bookingService "stagebook/internal/domains/booking/service"
	conceptRepository "stagebook/internal/domains/concept/repository"
	conceptService "stagebook/internal/domains/concept/service"
	eventRepository "stagebook/internal/domains/event/repository"
	eventService "stagebook/internal/domains/event/service"
	userRepository "stagebook/internal/domains/user/repository"
	userService "stagebook/internal/domains/user/service"
	bookingHandler "stagebook/internal/handlers/booking"
	eventHandler "stagebook/internal/handlers/event"
	userHandler "stagebook/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	notification.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var conceptDomain = wire.NewSet(
	conceptRepository.New,
	conceptService.New,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	userDomain,
	conceptDomain,
	eventDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	eventHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
