package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stagebook/config"
	"stagebook/infras/otel"
	"stagebook/internal/domains/concept/model"
	"stagebook/internal/domains/concept/repository"
	"stagebook/shared"
	"stagebook/shared/cache"
	"stagebook/shared/constant"
	"stagebook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetConcept = "concept:get"
)

type Store interface {
	GetConcept(ctx context.Context, id string) (model.Concept, error)
}

type serviceImpl struct {
	repo  repository.Concept
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Concept, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Store {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetConcept(ctx context.Context, id string) (res model.Concept, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".concept.GetConcept")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetConcept, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for concept")

		return res, nil
	}

	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get concept")

		return res, fmt.Errorf("failed to get concept: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("concept not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save concept to cache")
		}
	}()

	return res, nil
}
