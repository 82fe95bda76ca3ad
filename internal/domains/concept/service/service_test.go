package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stagebook/config"
	otelMocks "stagebook/infras/otel/mocks"
	conceptMocks "stagebook/internal/domains/concept/mocks"
	"stagebook/internal/domains/concept/model"
	"stagebook/internal/domains/concept/service"
	cacheMocks "stagebook/shared/cache/mocks"
	"stagebook/shared/failure"
)

func TestStore_GetConcept(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := conceptMocks.NewMockConcept(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(mockRepo, cfg, mockCache, otelMocks.NewOtel())

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "concept:get:c1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from store",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Concept{ID: "c1", OwnerID: "artist"}, nil)
			},
		},
		{
			name: "missing",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Concept{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.GetConcept(context.Background(), "c1")
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
