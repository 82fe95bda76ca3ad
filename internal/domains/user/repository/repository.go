package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"stagebook/infras/otel"
	"stagebook/infras/postgres"
	"stagebook/internal/domains/user/model"
	gDto "stagebook/shared/dto"
	gRepo "stagebook/shared/repository"
)

type User interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
