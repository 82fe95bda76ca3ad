package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"stagebook/infras/otel/mocks"
	bookingMocks "stagebook/internal/domains/booking/mocks"
	"stagebook/internal/domains/booking/model"
	"stagebook/internal/domains/booking/model/dto"
	eventDto "stagebook/internal/domains/event/model/dto"
	"stagebook/internal/handlers/booking"
	gDto "stagebook/shared/dto"
	"stagebook/shared/failure"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T) (*bookingMocks.MockBookingService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := bookingMocks.NewMockBookingService(ctrl)

	handler := booking.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *bookingMocks.MockBookingService)
		wantCode int
	}{
		{
			name:     "malformed body",
			body:     `{"receiver_id":`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing receiver",
			body:     `{"title":"Jazz Night"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "created",
			body: `{"receiver_id":"artist-1","title":"Jazz Night","pricing_mode":"fixed","fee":5000}`,
			setup: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						assert.Equal(t, "artist-1", req.ReceiverID)
						require.NotNil(t, req.Fee)
						assert.Equal(t, int64(5000), *req.Fee)

						return dto.BookingResponse{ID: "booking-1", Status: model.StatusPending.String()}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "receiver does not exist",
			body: `{"receiver_id":"ghost"}`,
			setup: func(svc *bookingMocks.MockBookingService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingResponse{}, failure.NotFound("user"))
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newServer(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			recorder := serve(router, http.MethodPost, "/bookings", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestHandler_GetMyBookings_PassesStatusFilter(t *testing.T) {
	svc, router := newServer(t)

	svc.EXPECT().ListMine(gomock.Any(), gomock.Any(), "approved_by_both").
		DoAndReturn(func(_ any, params gDto.QueryParams, _ string) (dto.GetBookingsResponse, error) {
			assert.Equal(t, 2, params.Page)

			return dto.GetBookingsResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/bookings/mine?status=approved_by_both&page=2", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_PublishBooking(t *testing.T) {
	t.Run("returns the public event", func(t *testing.T) {
		svc, router := newServer(t)

		svc.EXPECT().Publish(gomock.Any(), "booking-1").
			Return(eventDto.PublicEventResponse{ID: "event-1", SourceBookingID: "booking-1"}, nil)

		recorder := serve(router, http.MethodPost, "/bookings/booking-1/publish", "")

		require.Equal(t, http.StatusCreated, recorder.Code)

		var body struct {
			Data eventDto.PublicEventResponse `json:"data"`
		}

		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
		assert.Equal(t, "event-1", body.Data.ID)
	})

	t.Run("second publish conflicts", func(t *testing.T) {
		svc, router := newServer(t)

		svc.EXPECT().Publish(gomock.Any(), "booking-1").
			Return(eventDto.PublicEventResponse{}, failure.Wrap(http.StatusConflict, model.ErrAlreadyPublished))

		recorder := serve(router, http.MethodPost, "/bookings/booking-1/publish", "")

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestHandler_CompleteBooking(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantSystem bool
	}{
		{name: "party", target: "/bookings/booking-1/complete", wantSystem: false},
		{name: "scheduler", target: "/internal/bookings/booking-1/complete", wantSystem: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newServer(t)

			svc.EXPECT().Complete(gomock.Any(), "booking-1", tt.wantSystem).
				Return(dto.BookingResponse{ID: "booking-1", Status: model.StatusCompleted.String()}, nil)

			recorder := serve(router, http.MethodPost, tt.target, "")

			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

func TestHandler_ReasonIsRequired(t *testing.T) {
	tests := []struct {
		method string
		target string
	}{
		{method: http.MethodDelete, target: "/bookings/booking-1"},
		{method: http.MethodPost, target: "/bookings/booking-1/reject"},
		{method: http.MethodPost, target: "/bookings/booking-1/cancel"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			_, router := newServer(t)

			recorder := serve(router, tt.method, tt.target, `{"reason":""}`)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestHandler_DeleteBooking(t *testing.T) {
	svc, router := newServer(t)

	svc.EXPECT().SoftDelete(gomock.Any(), "booking-1", dto.ReasonRequest{Reason: "venue closed"}).Return(nil)

	recorder := serve(router, http.MethodDelete, "/bookings/booking-1", `{"reason":"venue closed"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_PurgeBooking_Forbidden(t *testing.T) {
	svc, router := newServer(t)

	svc.EXPECT().HardDelete(gomock.Any(), "booking-1").
		Return(failure.Wrap(http.StatusForbidden, model.ErrUnauthorized))

	recorder := serve(router, http.MethodDelete, "/bookings/booking-1/permanent", "")

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
