package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"stagebook/infras/otel"
	"stagebook/infras/postgres"
	"stagebook/internal/domains/booking/model"
	eventModel "stagebook/internal/domains/event/model"
	"stagebook/shared"
	"stagebook/shared/constant"
	gDto "stagebook/shared/dto"
	gRepo "stagebook/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// CompareAndSwap writes the mutable columns of booking when the stored version still
	// equals expectedVersion. It reports false when another write got there first.
	CompareAndSwap(ctx context.Context, booking model.Booking, expectedVersion int) (bool, error)
	// Publish swaps the booking to its published state and lists the event in one
	// transaction. A second listing for the same booking yields model.ErrAlreadyPublished.
	Publish(ctx context.Context, booking model.Booking, expectedVersion int, event eventModel.PublicEvent) error
	// Archive moves the booking into history, guarded by expectedVersion.
	Archive(ctx context.Context, history model.History, expectedVersion int) error
	// Purge erases the booking and any history of it, reporting whether anything existed.
	Purge(ctx context.Context, bookingID string) (bool, error)
	GetHistory(ctx context.Context, filter gDto.FilterGroup) (model.History, error)
	GetAllHistory(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.History, error)
	CountHistory(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	history gRepo.Repository[model.History]
	events  gRepo.Repository[eventModel.PublicEvent]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		history:    gRepo.NewRepository[model.History](model.HistoryEntityName, model.HistoryTableName, model.FieldID, db, otel),
		events:     gRepo.NewRepository[eventModel.PublicEvent](eventModel.EntityName, eventModel.TableName, eventModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// VersionFilter matches a booking only while it is still at expectedVersion.
func VersionFilter(id string, expectedVersion int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  model.ArgExpectedVersion,
				Field:    model.FieldVersion,
				Value:    expectedVersion,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func versionedColumns(booking model.Booking, expectedVersion int) map[string]any {
	columns := booking.MutableColumns()
	columns[model.FieldVersion] = expectedVersion + 1

	return columns
}

func (r *repositoryImpl) CompareAndSwap(ctx context.Context, booking model.Booking, expectedVersion int) (swapped bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CompareAndSwap")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := r.UpdateCount(ctx, versionedColumns(booking, expectedVersion), VersionFilter(booking.ID, expectedVersion))
	if err != nil {
		return false, fmt.Errorf("failed to swap booking: %w", err)
	}

	return affected == 1, nil
}

func (r *repositoryImpl) Publish(ctx context.Context, booking model.Booking, expectedVersion int, event eventModel.PublicEvent) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		affected, err := r.UpdateCountTx(ctx, sqltx, versionedColumns(booking, expectedVersion), VersionFilter(booking.ID, expectedVersion))
		if err != nil {
			return fmt.Errorf("failed to swap booking to published: %w", err)
		}

		if affected != 1 {
			return model.ErrConflict
		}

		if err := r.events.InsertTx(ctx, sqltx, event); err != nil {
			if isUniqueViolation(err) {
				return model.ErrAlreadyPublished
			}

			return fmt.Errorf("failed to list public event: %w", err)
		}

		return nil
	})
}

func (r *repositoryImpl) Archive(ctx context.Context, history model.History, expectedVersion int) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Archive")
	defer scope.End()
	defer scope.TraceIfError(err)

	return r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		affected, err := r.DeleteCountTx(ctx, sqltx, VersionFilter(history.BookingID, expectedVersion))
		if err != nil {
			return fmt.Errorf("failed to remove live booking: %w", err)
		}

		if affected != 1 {
			return model.ErrConflict
		}

		if err := r.history.InsertTx(ctx, sqltx, history); err != nil {
			return fmt.Errorf("failed to insert booking history: %w", err)
		}

		return nil
	})
}

func (r *repositoryImpl) Purge(ctx context.Context, bookingID string) (found bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Purge")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		live, err := r.DeleteCountTx(ctx, sqltx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to purge booking: %w", err)
		}

		archived, err := r.history.DeleteCountTx(ctx, sqltx, shared.FilterByID(bookingID, model.FieldHistoryBookingID, model.HistoryTableName))
		if err != nil {
			return fmt.Errorf("failed to purge booking history: %w", err)
		}

		found = live+archived > 0

		return nil
	})

	return found, err
}

func (r *repositoryImpl) GetHistory(ctx context.Context, filter gDto.FilterGroup) (model.History, error) {
	return r.history.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllHistory(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.History, error) {
	return r.history.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountHistory(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.history.Count(ctx, filter) //nolint:wrapcheck
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
