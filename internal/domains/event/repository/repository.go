package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"stagebook/infras/otel"
	"stagebook/infras/postgres"
	"stagebook/internal/domains/event/model"
	gDto "stagebook/shared/dto"
	gRepo "stagebook/shared/repository"
)

// Event reads public listings. Listings are only ever written by the booking publish transaction.
type Event interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PublicEvent, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PublicEvent, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.PublicEvent]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Event {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PublicEvent](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
