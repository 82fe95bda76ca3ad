package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"stagebook/infras/otel"
	"stagebook/infras/postgres"
	"stagebook/internal/domains/concept/model"
	gDto "stagebook/shared/dto"
	gRepo "stagebook/shared/repository"
)

type Concept interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Concept, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Concept]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Concept {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Concept](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
