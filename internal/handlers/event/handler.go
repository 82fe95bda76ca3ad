package event

import (
	"net/http"
	"stagebook/infras/otel"
	"stagebook/internal/domains/event/model"
	"stagebook/internal/domains/event/service"
	"stagebook/shared/constant"
	gDto "stagebook/shared/dto"
	"stagebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Listing
	otel    otel.Otel
}

func New(service service.Listing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEvents)
		routerGroup.Get("/{id}", handler.GetEventByID)
	})
}

// GetEvents lists published events, newest first.
// @Summary Get public events
// @Description Anyone may browse published events. Each event carries only the fields both parties agreed to share.
// @Tags Event
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param artist_id query string false "Filter by artist ID"
// @Success 200 {object} response.Data[dto.GetEventsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
func (handler *Handler) GetEvents(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filter := service.ArtistFilter(request.URL.Query().Get(model.FieldArtistID))

	events, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get events")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, events)
}

// GetEventByID returns a single published event.
// @Summary Get a public event
// @Tags Event
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Data[dto.PublicEventResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{id} [get]
func (handler *Handler) GetEventByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEventByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	event, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get event by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, event)
}
