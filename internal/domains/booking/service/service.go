package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names Booking=MockBookingService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path"
	"stagebook/config"
	"stagebook/infras/otel"
	"stagebook/infras/s3"
	"stagebook/internal/domains/booking/model"
	"stagebook/internal/domains/booking/model/dto"
	"stagebook/internal/domains/booking/repository"
	conceptService "stagebook/internal/domains/concept/service"
	eventModel "stagebook/internal/domains/event/model"
	eventDto "stagebook/internal/domains/event/model/dto"
	eventService "stagebook/internal/domains/event/service"
	userService "stagebook/internal/domains/user/service"
	"stagebook/internal/notification"
	"stagebook/shared"
	"stagebook/shared/cache"
	"stagebook/shared/constant"
	gDto "stagebook/shared/dto"
	"stagebook/shared/failure"
	"stagebook/shared/timezone"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	ListMine(ctx context.Context, params gDto.QueryParams, status string) (dto.GetBookingsResponse, error)
	ListHistory(ctx context.Context, params gDto.QueryParams) (dto.GetHistoryResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (dto.BookingResponse, error)
	Allow(ctx context.Context, id string) (dto.BookingResponse, error)
	Reject(ctx context.Context, id string, req dto.ReasonRequest) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (dto.BookingResponse, error)
	Publish(ctx context.Context, id string) (eventDto.PublicEventResponse, error)
	Cancel(ctx context.Context, id string, req dto.ReasonRequest) (dto.BookingResponse, error)
	Complete(ctx context.Context, id string, system bool) (dto.BookingResponse, error)
	SoftDelete(ctx context.Context, id string, req dto.ReasonRequest) error
	HardDelete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Booking
	profiles userService.Profile
	concepts conceptService.Store
	notifier notification.Dispatcher
	archive  s3.S3
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	profiles userService.Profile,
	concepts conceptService.Store,
	notifier notification.Dispatcher,
	archive s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		profiles: profiles,
		concepts: concepts,
		notifier: notifier,
		archive:  archive,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	draft := model.Draft{
		ID:         uuid.NewString(),
		SenderID:   actor,
		ReceiverID: req.ReceiverID,
	}

	if req.ConceptID != nil {
		if err = s.seedFromConcept(ctx, &draft, *req.ConceptID); err != nil {
			return res, err
		}
	}

	if err = req.ApplyTo(&draft); err != nil {
		return res, translate(err)
	}

	senderContact, err := s.profiles.GetContactInfo(ctx, draft.SenderID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sender contact info")

		return res, fmt.Errorf("failed to get sender contact info: %w", err)
	}

	receiverContact, err := s.profiles.GetContactInfo(ctx, draft.ReceiverID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get receiver contact info")

		return res, fmt.Errorf("failed to get receiver contact info: %w", err)
	}

	draft.SenderContact = model.ContactInfo(senderContact)
	draft.ReceiverContact = model.ContactInfo(receiverContact)

	booking, err := model.NewBooking(draft, timezone.Now())
	if err != nil {
		return res, translate(err)
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to insert booking")

		return res, fmt.Errorf("failed to insert booking: %w", err)
	}

	s.notify(ctx, notification.EventBookingRequested, booking.ID, booking.ReceiverID)

	res.FromModel(booking, actor)

	return res, nil
}

// seedFromConcept copies the receiver's concept into draft. Request values override it later.
func (s *serviceImpl) seedFromConcept(ctx context.Context, draft *model.Draft, conceptID string) error {
	concept, err := s.concepts.GetConcept(ctx, conceptID)
	if err != nil {
		log.Error().Err(err).Str("concept_id", conceptID).Msg("failed to get concept")

		return fmt.Errorf("failed to get concept: %w", err)
	}

	if concept.OwnerID != draft.ReceiverID {
		return translate(fmt.Errorf("%w: concept does not belong to the receiver", model.ErrValidation))
	}

	draft.ConceptID = &concept.ID
	draft.Title = concept.Title
	draft.Description = concept.Description
	draft.AudienceEstimate = concept.ExpectedAudience
	draft.TechSpec = concept.TechSpec
	draft.HospitalityRider = concept.HospitalityRider

	if concept.Price != nil {
		draft.Pricing = model.FixedFee(*concept.Price)
	}

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.load(ctx, id)
	if err != nil {
		return res, translate(err)
	}

	viewer := shared.ActorFromContext(ctx)
	if !booking.VisibleTo(viewer) {
		return res, translate(model.ErrNotFound)
	}

	res.FromModel(booking, viewer)

	return res, nil
}

// PartyFilter matches bookings where actor is either side.
func PartyFilter(actor string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldSenderID, Value: actor, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldReceiverID, Value: actor, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) ListMine(ctx context.Context, params gDto.QueryParams, status string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = params.ValidateSort(model.SortableFields...); err != nil {
		return res, failure.Wrap(http.StatusBadRequest, err)
	}

	actor := shared.ActorFromContext(ctx)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{PartyFilter(actor)},
	}

	if status != constant.Empty {
		parsed, err := model.ParseStatus(status)
		if err != nil {
			return res, translate(err)
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Value:    parsed,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, actor, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) ListHistory(ctx context.Context, params gDto.QueryParams) (res dto.GetHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldSenderID, Value: actor, Operator: gDto.FilterOperatorEq, Table: model.HistoryTableName},
			gDto.Filter{Field: model.FieldReceiverID, Value: actor, Operator: gDto.FilterOperatorEq, Table: model.HistoryTableName},
		},
	}

	if params.SortBy == constant.Empty || params.SortBy == constant.DefaultValueSortBy {
		params.SortBy = model.FieldDeletedAt
	}

	if err = params.ValidateSort(model.HistorySortableFields...); err != nil {
		return res, failure.Wrap(http.StatusBadRequest, err)
	}

	total, err := s.repo.CountHistory(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count booking history")

		return res, fmt.Errorf("failed to count booking history: %w", err)
	}

	models, err := s.repo.GetAllHistory(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking history")

		return res, fmt.Errorf("failed to get booking history: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	changes, err := req.ToChanges()
	if err != nil {
		return res, translate(err)
	}

	var previous model.Status

	booking, err := s.mutate(ctx, id, func(booking *model.Booking) error {
		previous = booking.Status

		return booking.ApplyChanges(actor, changes, timezone.Now())
	})
	if err != nil {
		return res, translate(err)
	}

	eventType := notification.EventBookingUpdated
	if previous == model.StatusPending && booking.Status == model.StatusAllowed {
		eventType = notification.EventBookingAllowed
	}

	s.notify(ctx, eventType, booking.ID, counterpart(booking, actor))

	res.FromModel(booking, actor)

	return res, nil
}

func (s *serviceImpl) Allow(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Allow")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	booking, err := s.mutate(ctx, id, func(booking *model.Booking) error {
		return booking.Allow(actor, timezone.Now())
	})
	if err != nil {
		return res, translate(err)
	}

	s.notify(ctx, notification.EventBookingAllowed, booking.ID, booking.SenderID)

	res.FromModel(booking, actor)

	return res, nil
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.ReasonRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	booking, err := s.mutate(ctx, id, func(booking *model.Booking) error {
		return booking.Reject(actor, req.Reason, timezone.Now())
	})
	if err != nil {
		return res, translate(err)
	}

	s.notify(ctx, notification.EventBookingRejected, booking.ID, booking.SenderID)

	res.FromModel(booking, actor)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string, req dto.ConfirmBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	var summary model.AgreementSummary

	booking, err := s.mutate(ctx, id, func(booking *model.Booking) error {
		var err error

		summary, err = booking.Confirm(actor, req.ToInput(), timezone.Now())

		return err
	})
	if err != nil {
		return res, translate(err)
	}

	s.archiveSummary(ctx, booking.ID, summary)

	if booking.Status == model.StatusApprovedByBoth {
		s.notify(ctx, notification.EventBookingApproved, booking.ID, booking.SenderID, booking.ReceiverID)
	} else {
		s.notify(ctx, notification.EventBookingConfirmed, booking.ID, counterpart(booking, actor))
	}

	res.FromModel(booking, actor)

	return res, nil
}

func (s *serviceImpl) Publish(ctx context.Context, id string) (res eventDto.PublicEventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)
	eventID := uuid.NewString()

	var event eventModel.PublicEvent

	booking, err := s.commit(ctx, id,
		func(booking *model.Booking) error {
			at := timezone.Now()
			if err := booking.Publish(actor, at); err != nil {
				return err
			}

			event = eventModel.FromBooking(eventID, *booking, s.portfolioURL(booking.ReceiverID), actor, at)

			return nil
		},
		func(ctx context.Context, booking model.Booking, expectedVersion int) (bool, error) {
			return swapped(s.repo.Publish(ctx, booking, expectedVersion, event))
		},
	)
	if err != nil {
		return res, translate(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, eventService.CacheGetAllEvent)
		shared.InvalidateCaches(c, s.cache, eventService.CacheCountEvent)
	}()

	s.notify(ctx, notification.EventBookingPublished, booking.ID, booking.SenderID, booking.ReceiverID)

	res.FromModel(event)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string, req dto.ReasonRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	booking, err := s.mutate(ctx, id, func(booking *model.Booking) error {
		return booking.Cancel(actor, req.Reason, timezone.Now())
	})
	if err != nil {
		return res, translate(err)
	}

	s.notify(ctx, notification.EventBookingCancelled, booking.ID, counterpart(booking, actor))

	res.FromModel(booking, actor)

	return res, nil
}

func (s *serviceImpl) Complete(ctx context.Context, id string, system bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)
	if system {
		actor = constant.SystemActor
	}

	booking, err := s.mutate(ctx, id, func(booking *model.Booking) error {
		return booking.Complete(actor, system, timezone.Now())
	})
	if err != nil {
		return res, translate(err)
	}

	s.notify(ctx, notification.EventBookingCompleted, booking.ID, booking.SenderID, booking.ReceiverID)

	res.FromModel(booking, actor)

	return res, nil
}

func (s *serviceImpl) SoftDelete(ctx context.Context, id string, req dto.ReasonRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.SoftDelete")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)
	historyID := uuid.NewString()

	var history model.History

	booking, err := s.commit(ctx, id,
		func(booking *model.Booking) error {
			var err error

			history, err = booking.ToHistory(historyID, actor, req.Reason, timezone.Now())

			return err
		},
		func(ctx context.Context, _ model.Booking, expectedVersion int) (bool, error) {
			return swapped(s.repo.Archive(ctx, history, expectedVersion))
		},
	)
	if err != nil {
		return translate(err)
	}

	s.notify(ctx, notification.EventBookingDeleted, booking.ID, counterpart(booking, actor))

	return nil
}

func (s *serviceImpl) HardDelete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.HardDelete")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor := shared.ActorFromContext(ctx)

	if err = s.authorizePurge(ctx, id, actor); err != nil {
		return translate(err)
	}

	found, err := s.repo.Purge(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to purge booking")

		return fmt.Errorf("failed to purge booking: %w", err)
	}

	if !found {
		return translate(model.ErrNotFound)
	}

	return nil
}

// authorizePurge checks the live booking first and falls back to its history record.
func (s *serviceImpl) authorizePurge(ctx context.Context, id, actor string) error {
	booking, err := s.load(ctx, id)
	if err == nil {
		return booking.CanPurge(actor)
	}

	if !errors.Is(err, model.ErrNotFound) {
		return err
	}

	history, err := s.repo.GetHistory(ctx, shared.FilterByID(id, model.FieldHistoryBookingID, model.HistoryTableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking history")

		return fmt.Errorf("failed to get booking history: %w", err)
	}

	if history.ID == constant.Empty {
		return model.ErrNotFound
	}

	if !history.IsParty(actor) {
		return model.ErrUnauthorized
	}

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrNotFound
	}

	return booking, nil
}

type commitFunc func(ctx context.Context, booking model.Booking, expectedVersion int) (bool, error)

// mutate applies fn to the latest booking and writes it back with a compare-and-swap.
func (s *serviceImpl) mutate(ctx context.Context, id string, fn func(booking *model.Booking) error) (model.Booking, error) {
	return s.commit(ctx, id, fn, s.repo.CompareAndSwap)
}

// commit re-reads and re-applies fn whenever write loses a version race, up to the configured
// number of retries.
func (s *serviceImpl) commit(ctx context.Context, id string, fn func(booking *model.Booking) error, write commitFunc) (model.Booking, error) {
	attempts := s.cfg.Booking.MaxCASRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		booking, err := s.load(ctx, id)
		if err != nil {
			return model.Booking{}, err
		}

		expectedVersion := booking.Version

		if err := fn(&booking); err != nil {
			return model.Booking{}, err
		}

		ok, err := write(ctx, booking, expectedVersion)
		if err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to write booking")

			return model.Booking{}, fmt.Errorf("failed to write booking: %w", err)
		}

		if ok {
			booking.Version = expectedVersion + 1

			return booking, nil
		}

		log.Warn().Str("booking_id", id).Int("attempt", attempt).Msg("booking version conflict, retrying")
	}

	return model.Booking{}, model.ErrConflict
}

// swapped turns a transactional write's conflict into a retryable miss.
func swapped(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrConflict):
		return false, nil
	default:
		return false, err
	}
}

func (s *serviceImpl) portfolioURL(artistID string) string {
	if s.cfg.App.PortfolioBaseURL == constant.Empty {
		return constant.Empty
	}

	return strings.TrimRight(s.cfg.App.PortfolioBaseURL, "/") + "/" + artistID
}

func (s *serviceImpl) notify(ctx context.Context, eventType notification.EventType, bookingID string, recipients ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, recipient := range recipients {
			if err := s.notifier.Notify(c, recipient, eventType, bookingID); err != nil {
				log.Warn().Err(err).Str("booking_id", bookingID).Str("recipient", recipient).Msg("notification dropped")
			}
		}
	}()
}

func (s *serviceImpl) archiveSummary(ctx context.Context, bookingID string, summary model.AgreementSummary) {
	if !s.cfg.Booking.ArchiveEnabled {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		data, err := json.Marshal(summary)
		if err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to encode agreement summary")

			return
		}

		fileName := fmt.Sprintf("%d-%s.json", summary.ConfirmedAt.UnixMilli(), summary.Party)
		directory := path.Join(s.cfg.Booking.ArchivePrefix, bookingID)

		if _, err := s.archive.UploadFileBytes(c, s.cfg.Booking.ArchiveBucket, directory, fileName, constant.ContentTypeJSON, data); err != nil {
			log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to archive agreement summary")
		}
	}()
}

func counterpart(booking model.Booking, actor string) string {
	if actor == booking.SenderID {
		return booking.ReceiverID
	}

	return booking.SenderID
}

// translate maps domain errors onto transport failures. Failures built elsewhere pass through.
func translate(err error) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return failure.Wrap(http.StatusNotFound, err)
	case errors.Is(err, model.ErrUnauthorized):
		return failure.Wrap(http.StatusForbidden, err)
	case errors.Is(err, model.ErrInvalidStatus),
		errors.Is(err, model.ErrAlreadyConfirmed),
		errors.Is(err, model.ErrAlreadyPublished),
		errors.Is(err, model.ErrConflict):
		return failure.Wrap(http.StatusConflict, err)
	case errors.Is(err, model.ErrValidation):
		return failure.Wrap(http.StatusBadRequest, err)
	default:
		return err
	}
}
