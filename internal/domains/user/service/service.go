package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stagebook/config"
	"stagebook/infras/otel"
	"stagebook/internal/domains/user/model"
	"stagebook/internal/domains/user/model/dto"
	"stagebook/internal/domains/user/repository"
	"stagebook/shared"
	"stagebook/shared/cache"
	"stagebook/shared/constant"
	"stagebook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser = "user:get"
)

// Profile reads user profiles. Bookings snapshot contact info from here once, at creation.
type Profile interface {
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	GetContactInfo(ctx context.Context, userID string) (model.ContactInfo, error)
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Profile {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.active(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

// GetContactInfo always reads the store so a booking never snapshots a stale profile.
func (s *serviceImpl) GetContactInfo(ctx context.Context, userID string) (res model.ContactInfo, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetContactInfo")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, err := s.active(ctx, userID)
	if err != nil {
		return res, err
	}

	return user.ContactInfo(), nil
}

func (s *serviceImpl) active(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return user, failure.NotFound("user not found") // nolint:wrapcheck
	}

	return user, nil
}
