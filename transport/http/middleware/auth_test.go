package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"stagebook/config"
	"stagebook/infras/jwt"
	"stagebook/infras/otel/mocks"
	"stagebook/permissions"
	"stagebook/shared"
	"stagebook/shared/constant"
	"stagebook/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "internal-key"

func newRouter(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	tokens := jwt.New(cfg)

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/events/", Method: http.MethodGet, Skip: true},
			{Path: "/v1/bookings/", Method: http.MethodPost, Permissions: []string{constant.RoleOrganizer}},
			{Path: "/v1/internal/bookings/{id}/complete", Method: http.MethodPost, Permissions: []string{"internal"}},
		},
	}

	authRole := middleware.NewAuthRoleMiddleware(tokens, mocks.NewOtel(), perms, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Actor", shared.ActorFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}

	router := chi.NewRouter()
	router.Route("/v1", func(group chi.Router) {
		group.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)

		group.Route("/events", func(events chi.Router) {
			events.Get("/", echo)
		})
		group.Route("/bookings", func(bookings chi.Router) {
			bookings.Post("/", echo)
		})
		group.Post("/internal/bookings/{id}/complete", echo)
		group.Get("/unlisted", echo)
	})

	return router, tokens
}

func bearer(t *testing.T, tokens jwt.JWT, userID, role string) string {
	t.Helper()

	token, err := tokens.GenerateToken(userID, role, jwt.AccessToken)
	require.NoError(t, err)

	return "Bearer " + token
}

func TestAuthRole(t *testing.T) {
	router, tokens := newRouter(t)

	tests := []struct {
		name      string
		method    string
		target    string
		headers   map[string]string
		wantCode  int
		wantActor string
	}{
		{
			name:     "public listing needs no token",
			method:   http.MethodGet,
			target:   "/v1/events",
			wantCode: http.StatusOK,
		},
		{
			name:     "public listing with trailing slash",
			method:   http.MethodGet,
			target:   "/v1/events/",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodPost,
			target:   "/v1/bookings",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "garbage token",
			method:   http.MethodPost,
			target:   "/v1/bookings",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Bearer nope"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "organizer may request a booking",
			method: http.MethodPost,
			target: "/v1/bookings",
			headers: map[string]string{
				constant.RequestHeaderAuthorization: bearer(t, tokens, "organizer-1", constant.RoleOrganizer),
			},
			wantCode:  http.StatusOK,
			wantActor: "organizer-1",
		},
		{
			name:   "artist may not request a booking",
			method: http.MethodPost,
			target: "/v1/bookings",
			headers: map[string]string{
				constant.RequestHeaderAuthorization: bearer(t, tokens, "artist-1", constant.RoleArtist),
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "artist may not request a booking with trailing slash",
			method: http.MethodPost,
			target: "/v1/bookings/",
			headers: map[string]string{
				constant.RequestHeaderAuthorization: bearer(t, tokens, "artist-1", constant.RoleArtist),
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "route without permission entry is denied",
			method: http.MethodGet,
			target: "/v1/unlisted",
			headers: map[string]string{
				constant.RequestHeaderAuthorization: bearer(t, tokens, "organizer-1", constant.RoleOrganizer),
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "scheduler with api key",
			method:   http.MethodPost,
			target:   "/v1/internal/bookings/b-1/complete",
			headers:  map[string]string{constant.RequestHeaderAPIKey: apiKey},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPost,
			target:   "/v1/internal/bookings/b-1/complete",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "user token cannot reach internal route",
			method: http.MethodPost,
			target: "/v1/internal/bookings/b-1/complete",
			headers: map[string]string{
				constant.RequestHeaderAuthorization: bearer(t, tokens, "organizer-1", constant.RoleOrganizer),
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, tt.target, nil)
			for key, value := range tt.headers {
				request.Header.Set(key, value)
			}

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantActor != "" {
				assert.Equal(t, tt.wantActor, recorder.Header().Get("X-Actor"))
			}
		})
	}
}
