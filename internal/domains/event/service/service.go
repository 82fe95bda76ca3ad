package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stagebook/config"
	"stagebook/infras/otel"
	"stagebook/internal/domains/event/model"
	"stagebook/internal/domains/event/model/dto"
	"stagebook/internal/domains/event/repository"
	"stagebook/shared"
	"stagebook/shared/cache"
	"stagebook/shared/constant"
	gDto "stagebook/shared/dto"
	"stagebook/shared/failure"

	"github.com/rs/zerolog/log"
)

// Cache prefixes are exported so publishers can drop stale listings.
const (
	CacheGetEvent    = "event:get"
	CacheGetAllEvent = "event:gets"
	CacheCountEvent  = "event:count"
)

type Listing interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEventsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PublicEventResponse, error)
}

type serviceImpl struct {
	repo  repository.Event
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Event, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Listing {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// ArtistFilter narrows listings to one artist. An empty id matches everything.
func ArtistFilter(artistID string) gDto.FilterGroup {
	if artistID == constant.Empty {
		return gDto.FilterGroup{}
	}

	return shared.FilterByID(artistID, model.FieldArtistID, model.TableName)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == constant.Empty || req.SortBy == constant.DefaultValueSortBy {
		req.SortBy = model.FieldPublishedAt
	}

	if err = req.ValidateSort(model.SortableFields...); err != nil {
		return res, failure.BadRequest(err)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for events")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return res, fmt.Errorf("failed to get events: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save events to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PublicEventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".event.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetEvent, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event")

		return res, nil
	}

	event, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get event")

		return res, fmt.Errorf("failed to get event: %w", err)
	}

	if event.ID == constant.Empty {
		return res, failure.NotFound("event not found") // nolint:wrapcheck
	}

	res.FromModel(event)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event to cache")
		}
	}()

	return res, nil
}
