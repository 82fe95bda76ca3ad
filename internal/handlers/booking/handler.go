package booking

import (
	"net/http"
	"stagebook/infras/otel"
	"stagebook/internal/domains/booking/model"
	"stagebook/internal/domains/booking/model/dto"
	"stagebook/internal/domains/booking/service"
	"stagebook/shared/constant"
	gDto "stagebook/shared/dto"
	"stagebook/shared/validator"
	"stagebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/mine", handler.GetMyBookings)
		routerGroup.Get("/history", handler.GetBookingHistory)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
		routerGroup.Delete("/{id}/permanent", handler.PurgeBooking)
		routerGroup.Post("/{id}/allow", handler.AllowBooking)
		routerGroup.Post("/{id}/reject", handler.RejectBooking)
		routerGroup.Post("/{id}/confirm", handler.ConfirmBooking)
		routerGroup.Post("/{id}/publish", handler.PublishBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/complete", handler.CompleteBooking)
	})

	router.Post("/internal/bookings/{id}/complete", handler.CompleteBookingInternal)
}

// CreateBooking handles a sender's booking request.
// @Summary Request a booking
// @Description Create a booking request addressed to a receiver. Contact info is snapshotted from both profiles.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking requested " + booking.ID)

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetMyBookings lists bookings where the caller is either party.
// @Summary Get my bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.ListMine(ctx, queryParams, request.URL.Query().Get(model.FieldStatus))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetBookingHistory lists the caller's soft-deleted bookings.
// @Summary Get booking history
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetHistoryResponse]
// @Failure 500 {object} response.Error
// @Router /v1/bookings/history [get]
// @Security BearerAuth
func (handler *Handler) GetBookingHistory(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingHistory")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	history, err := handler.service.ListHistory(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking history")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, history)
}

// GetBookingByID returns the booking with only the fields the caller may see.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// UpdateBooking edits negotiable fields. Any accepted change clears both confirmations.
// @Summary Update a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Update Booking Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// DeleteBooking soft-deletes a booking into the history table.
// @Summary Delete a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ReasonRequest true "Deletion reason"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.ReasonRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SoftDelete(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking deleted successfully")
}

// PurgeBooking removes a booking and its history for good.
// @Summary Permanently delete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/permanent [delete]
// @Security BearerAuth
func (handler *Handler) PurgeBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.HardDelete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purge booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking permanently deleted")
}

// AllowBooking lets the receiver accept a pending request into negotiation.
// @Summary Allow a booking request
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/allow [post]
// @Security BearerAuth
func (handler *Handler) AllowBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AllowBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.Allow(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to allow booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// RejectBooking lets the receiver decline a request.
// @Summary Reject a booking request
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ReasonRequest true "Rejection reason"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.ReasonRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Reject(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// ConfirmBooking records the caller's approval of the current terms and visibility.
// @Summary Confirm a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ConfirmBookingRequest true "Confirmation"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/confirm [post]
// @Security BearerAuth
func (handler *Handler) ConfirmBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.ConfirmBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Confirm(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// PublishBooking turns a fully approved booking into a public event.
// @Summary Publish a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 201 {object} response.Data[eventDto.PublicEventResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/publish [post]
// @Security BearerAuth
func (handler *Handler) PublishBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PublishBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	event, err := handler.service.Publish(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to publish booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking published as event " + event.ID)

	response.WithJSON(writer, http.StatusCreated, event)
}

// CancelBooking ends a booking that has not been published.
// @Summary Cancel a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.ReasonRequest true "Cancellation reason"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.ReasonRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Cancel(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// CompleteBooking marks an upcoming booking as held, on behalf of a party.
// @Summary Complete a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteBooking(writer http.ResponseWriter, request *http.Request) {
	handler.complete(writer, request, false)
}

// CompleteBookingInternal lets a scheduler complete bookings once their date passes.
// @Summary Complete a booking (internal)
// @Tags Internal
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/internal/bookings/{id}/complete [post]
// @Security ApiKeyAuth
func (handler *Handler) CompleteBookingInternal(writer http.ResponseWriter, request *http.Request) {
	handler.complete(writer, request, true)
}

func (handler *Handler) complete(writer http.ResponseWriter, request *http.Request, system bool) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	scope.SetAttribute("booking.system", system)

	booking, err := handler.service.Complete(ctx, id, system)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}
