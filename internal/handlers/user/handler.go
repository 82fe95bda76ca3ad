package user

import (
	"net/http"
	"stagebook/infras/otel"
	"stagebook/internal/domains/user/service"
	"stagebook/shared"
	"stagebook/shared/constant"
	"stagebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Profile
	otel    otel.Otel
}

func New(service service.Profile, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Get("/me", handler.GetMe)
	})
}

// GetMe returns the caller's own profile.
// @Summary Get my profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) GetMe(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMe")
	defer scope.End()

	user, err := handler.service.Get(ctx, shared.ActorFromContext(ctx))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, user)
}
