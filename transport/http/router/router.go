package router

import (
	"stagebook/internal/handlers/booking"
	"stagebook/internal/handlers/event"
	"stagebook/internal/handlers/user"
	"stagebook/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking booking.Handler
	Event   event.Handler
	User    user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
