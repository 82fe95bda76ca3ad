package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stagebook/config"
	otelMocks "stagebook/infras/otel/mocks"
	s3Mocks "stagebook/infras/s3/mocks"
	bookingMocks "stagebook/internal/domains/booking/mocks"
	"stagebook/internal/domains/booking/model"
	"stagebook/internal/domains/booking/model/dto"
	"stagebook/internal/domains/booking/service"
	conceptMocks "stagebook/internal/domains/concept/mocks"
	conceptModel "stagebook/internal/domains/concept/model"
	eventModel "stagebook/internal/domains/event/model"
	userMocks "stagebook/internal/domains/user/mocks"
	userModel "stagebook/internal/domains/user/model"
	notificationMocks "stagebook/internal/notification/mocks"
	cacheMocks "stagebook/shared/cache/mocks"
	"stagebook/shared/constant"
	gDto "stagebook/shared/dto"
	"stagebook/shared/failure"
)

const (
	organizer = "organizer-a"
	artist    = "artist-b"
	stranger  = "viewer-c"
	bookingID = "booking-1"
)

type fixture struct {
	svc      service.Booking
	repo     *bookingMocks.MockBooking
	profiles *userMocks.MockProfile
	concepts *conceptMocks.MockStore
	archive  *s3Mocks.MockS3
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		profiles: userMocks.NewMockProfile(ctrl),
		concepts: conceptMocks.NewMockStore(ctrl),
		archive:  s3Mocks.NewMockS3(ctrl),
	}

	notifier := notificationMocks.NewMockDispatcher(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.archive.EXPECT().
		UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.MaxCASRetries = 3
	cfg.Booking.ArchiveEnabled = true
	cfg.App.PortfolioBaseURL = "https://stagebook.test/artists/"

	f.svc = service.New(f.repo, f.profiles, f.concepts, notifier, f.archive, cfg, mockCache, otelMocks.NewOtel())

	return f
}

func as(actor string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, actor)
}

func stored(status model.Status) model.Booking {
	fee := int64(5000)
	eventDate := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	booking := model.Booking{
		ID:                 bookingID,
		SenderID:           organizer,
		ReceiverID:         artist,
		Status:             status,
		Title:              "Jazz Night",
		Venue:              "Blue Room",
		EventDate:          &eventDate,
		TicketPrice:        1500,
		PricingMode:        model.PricingModeFixed,
		Fee:                &fee,
		PersonalMessage:    "see you there",
		PublicVisibility:   model.Visibility{},
		AgreementSummaries: model.AgreementSummaries{},
		SenderContact:      model.ContactInfo{Name: "Org", Email: "org@example.com"},
		ReceiverContact:    model.ContactInfo{Name: "Art", Email: "art@example.com"},
		Version:            4,
	}

	if status != model.StatusPending && status != model.StatusCancelled {
		booking.AllowedAt = &eventDate
	}

	switch status {
	case model.StatusApprovedBySender:
		booking.SenderConfirmed = true
	case model.StatusApprovedByReceiver:
		booking.ReceiverConfirmed = true
	case model.StatusApprovedByBoth, model.StatusUpcoming, model.StatusCompleted:
		booking.SenderConfirmed = true
		booking.ReceiverConfirmed = true
		booking.PublicVisibility = model.Visibility{model.FieldNameTitle: true, model.FieldNameTicketPrice: false}
		booking.IsPublicAfterApproval = true
	}

	return booking
}

func TestService_Create(t *testing.T) {
	conceptID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	price := int64(8000)

	tests := []struct {
		name      string
		actor     string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
		check     func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name:  "fixed fee request",
			actor: organizer,
			req: dto.CreateBookingRequest{
				ReceiverID:  artist,
				Title:       ptr("Jazz Night"),
				PricingMode: string(model.PricingModeFixed),
				Fee:         ptr(int64(5000)),
			},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().GetContactInfo(gomock.Any(), organizer).Return(userModel.ContactInfo{Name: "Org"}, nil)
				f.profiles.EXPECT().GetContactInfo(gomock.Any(), artist).Return(userModel.ContactInfo{Name: "Art"}, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
					assert.Equal(t, model.StatusPending, booking.Status)
					assert.False(t, booking.SenderConfirmed)
					assert.False(t, booking.ReceiverConfirmed)
					assert.Equal(t, "Org", booking.SenderContact.Name)
					assert.Equal(t, "Art", booking.ReceiverContact.Name)
					assert.Equal(t, 1, booking.Version)

					return nil
				})
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, string(model.StatusPending), res.Status)
				require.NotNil(t, res.Fee)
				assert.Equal(t, int64(5000), *res.Fee)
				assert.Nil(t, res.Contacts)
			},
		},
		{
			name:  "seeded from concept",
			actor: organizer,
			req:   dto.CreateBookingRequest{ReceiverID: artist, ConceptID: &conceptID, Venue: ptr("Blue Room")},
			setupMock: func(f fixture) {
				f.concepts.EXPECT().GetConcept(gomock.Any(), conceptID).Return(conceptModel.Concept{
					ID:               conceptID,
					OwnerID:          artist,
					Title:            "Quartet Set",
					Price:            &price,
					ExpectedAudience: 120,
					TechSpec:         "4 DI boxes",
				}, nil)
				f.profiles.EXPECT().GetContactInfo(gomock.Any(), gomock.Any()).Return(userModel.ContactInfo{}, nil).Times(2)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
					assert.Equal(t, "Quartet Set", booking.Title)
					assert.Equal(t, "Blue Room", booking.Venue)
					assert.Equal(t, 120, booking.AudienceEstimate)
					assert.Equal(t, "4 DI boxes", booking.TechSpec)
					assert.Equal(t, model.PricingModeFixed, booking.PricingMode)
					require.NotNil(t, booking.ConceptID)
					assert.Equal(t, conceptID, *booking.ConceptID)

					return nil
				})
			},
		},
		{
			name:  "concept of another artist",
			actor: organizer,
			req:   dto.CreateBookingRequest{ReceiverID: artist, ConceptID: &conceptID},
			setupMock: func(f fixture) {
				f.concepts.EXPECT().GetConcept(gomock.Any(), conceptID).Return(conceptModel.Concept{ID: conceptID, OwnerID: stranger}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "booking yourself",
			actor: organizer,
			req:   dto.CreateBookingRequest{ReceiverID: organizer, Title: ptr("Solo")},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().GetContactInfo(gomock.Any(), organizer).Return(userModel.ContactInfo{}, nil).Times(2)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:  "unknown receiver",
			actor: organizer,
			req:   dto.CreateBookingRequest{ReceiverID: "ghost", Title: ptr("Jazz Night")},
			setupMock: func(f fixture) {
				f.profiles.EXPECT().GetContactInfo(gomock.Any(), organizer).Return(userModel.ContactInfo{}, nil)
				f.profiles.EXPECT().GetContactInfo(gomock.Any(), "ghost").Return(userModel.ContactInfo{}, failure.NotFound("user not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:  "fee and door split together",
			actor: organizer,
			req: dto.CreateBookingRequest{
				ReceiverID:     artist,
				Title:          ptr("Jazz Night"),
				Fee:            ptr(int64(100)),
				DoorPercentage: ptr(20.0),
			},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			res, err := f.svc.Create(as(tt.actor), tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestService_Get(t *testing.T) {
	withoutContactInfo := []string{}
	for _, name := range model.AllFieldNames() {
		if name != string(model.FieldNameContactInfo) {
			withoutContactInfo = append(withoutContactInfo, name)
		}
	}

	tests := []struct {
		name         string
		viewer       string
		status       model.Status
		wantCode     int
		wantFields   []string
		wantContacts bool
		wantTitle    bool
	}{
		{name: "stranger on allowed", viewer: stranger, status: model.StatusAllowed, wantCode: http.StatusNotFound},
		{name: "stranger on pending", viewer: stranger, status: model.StatusPending, wantCode: http.StatusNotFound},
		{name: "stranger on both approved", viewer: stranger, status: model.StatusApprovedByBoth, wantCode: http.StatusNotFound},
		{name: "anonymous on allowed", viewer: "", status: model.StatusAllowed, wantCode: http.StatusNotFound},
		{name: "stranger on upcoming", viewer: stranger, status: model.StatusUpcoming, wantFields: []string{"title"}, wantTitle: true},
		{name: "party on pending", viewer: artist, status: model.StatusPending, wantFields: withoutContactInfo, wantTitle: true},
		{name: "party on rejected request", viewer: organizer, status: model.StatusCancelled, wantFields: withoutContactInfo, wantTitle: true},
		{name: "party on allowed", viewer: artist, status: model.StatusAllowed, wantFields: model.AllFieldNames(), wantContacts: true, wantTitle: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(tt.status), nil)

			res, err := f.svc.Get(as(tt.viewer), bookingID)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.ErrorIs(t, err, model.ErrNotFound)
				assert.Empty(t, res.ID)
				assert.Empty(t, res.Status)

				return
			}

			require.NoError(t, err)

			assert.Equal(t, tt.wantFields, res.VisibleFields)
			assert.Equal(t, tt.wantContacts, res.Contacts != nil)
			assert.Equal(t, tt.wantTitle, res.Title != nil)

			if tt.viewer == stranger {
				assert.Nil(t, res.Fee)
				assert.Nil(t, res.TicketPrice)
				assert.Nil(t, res.PersonalMessage)
				assert.Nil(t, res.SenderID)
			}
		})
	}

	t.Run("missing booking", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(as(artist), bookingID)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("receiver edit allows a pending booking", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)
		f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ int) (bool, error) {
				assert.Equal(t, "Green Hall", booking.Venue)
				assert.Equal(t, model.StatusAllowed, booking.Status)

				return true, nil
			})

		res, err := f.svc.Update(as(artist), bookingID, dto.UpdateBookingRequest{Venue: ptr("Green Hall")})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusAllowed), res.Status)
		require.NotNil(t, res.Version)
		assert.Equal(t, 5, *res.Version)
	})

	t.Run("edit after approval resets confirmations", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusApprovedByBoth), nil)
		f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ int) (bool, error) {
				assert.False(t, booking.SenderConfirmed)
				assert.False(t, booking.ReceiverConfirmed)
				assert.Empty(t, booking.PublicVisibility)

				return true, nil
			})

		res, err := f.svc.Update(as(artist), bookingID, dto.UpdateBookingRequest{AudienceEstimate: ptr(300)})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusAllowed), res.Status)
	})

	t.Run("stranger", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusAllowed), nil)

		_, err := f.svc.Update(as(stranger), bookingID, dto.UpdateBookingRequest{Venue: ptr("Elsewhere")})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("published booking", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusUpcoming), nil)

		_, err := f.svc.Update(as(organizer), bookingID, dto.UpdateBookingRequest{Venue: ptr("Elsewhere")})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})
}

func TestService_CompareAndSwapRetries(t *testing.T) {
	t.Run("lost race is re-applied on fresh data", func(t *testing.T) {
		f := setup(t)

		first := stored(model.StatusAllowed)
		second := stored(model.StatusApprovedByReceiver)
		second.Version = 5

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(first, nil),
			f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).Return(false, nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(second, nil),
			f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 5).
				DoAndReturn(func(_ context.Context, booking model.Booking, _ int) (bool, error) {
					assert.True(t, booking.SenderConfirmed)
					assert.True(t, booking.ReceiverConfirmed)

					return true, nil
				}),
		)

		res, err := f.svc.Confirm(as(organizer), bookingID, dto.ConfirmBookingRequest{
			PublicFields: map[string]bool{"title": true},
			Acknowledged: true,
		})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusApprovedByBoth), res.Status)
	})

	t.Run("exhausted retries", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusAllowed), nil).Times(4)
		f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).Return(false, nil).Times(4)

		_, err := f.svc.Cancel(as(organizer), bookingID, dto.ReasonRequest{Reason: "venue closed"})
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("cancellation race observed on re-read", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusAllowed), nil),
			f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).Return(false, nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusCancelled), nil),
		)

		_, err := f.svc.Confirm(as(artist), bookingID, dto.ConfirmBookingRequest{Acknowledged: true})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})

	t.Run("store failure", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)
		f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).Return(false, errors.New("db down"))

		_, err := f.svc.Allow(as(artist), bookingID)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestService_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		actor      string
		status     model.Status
		req        dto.ConfirmBookingRequest
		wantStatus model.Status
		wantCode   int
		wantErr    error
	}{
		{
			name:       "first confirmation",
			actor:      organizer,
			status:     model.StatusAllowed,
			req:        dto.ConfirmBookingRequest{PublicFields: map[string]bool{"title": true, "ticket_price": false}, Acknowledged: true},
			wantStatus: model.StatusApprovedBySender,
		},
		{
			name:     "not acknowledged",
			actor:    organizer,
			status:   model.StatusAllowed,
			req:      dto.ConfirmBookingRequest{},
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrValidation,
		},
		{
			name:     "confirmed twice",
			actor:    organizer,
			status:   model.StatusApprovedBySender,
			req:      dto.ConfirmBookingRequest{Acknowledged: true},
			wantCode: http.StatusConflict,
			wantErr:  model.ErrAlreadyConfirmed,
		},
		{
			name:     "still pending",
			actor:    artist,
			status:   model.StatusPending,
			req:      dto.ConfirmBookingRequest{Acknowledged: true},
			wantCode: http.StatusConflict,
			wantErr:  model.ErrInvalidStatus,
		},
		{
			name:     "unknown field",
			actor:    artist,
			status:   model.StatusAllowed,
			req:      dto.ConfirmBookingRequest{PublicFields: map[string]bool{"lineup": true}, Acknowledged: true},
			wantCode: http.StatusBadRequest,
			wantErr:  model.ErrValidation,
		},
		{
			name:     "stranger",
			actor:    stranger,
			status:   model.StatusAllowed,
			req:      dto.ConfirmBookingRequest{Acknowledged: true},
			wantCode: http.StatusForbidden,
			wantErr:  model.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(tt.status), nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).Return(true, nil)
			}

			res, err := f.svc.Confirm(as(tt.actor), bookingID, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(tt.wantStatus), res.Status)
			assert.Len(t, res.AgreementSummaries, 1)
		})
	}
}

func TestService_Publish(t *testing.T) {
	t.Run("lists only public fields", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusApprovedByBoth), nil)
		f.repo.EXPECT().Publish(gomock.Any(), gomock.Any(), 4, gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ int, event eventModel.PublicEvent) error {
				assert.Equal(t, model.StatusUpcoming, booking.Status)
				assert.Equal(t, bookingID, event.SourceBookingID)
				assert.Equal(t, artist, event.ArtistID)
				assert.Nil(t, event.TicketPrice)

				return nil
			})

		res, err := f.svc.Publish(as(organizer), bookingID)
		require.NoError(t, err)
		require.NotNil(t, res.Title)
		assert.Equal(t, "Jazz Night", *res.Title)
		assert.Nil(t, res.TicketPrice)
		assert.Nil(t, res.Venue)
		assert.Equal(t, "https://stagebook.test/artists/"+artist, res.PortfolioURL)
	})

	t.Run("second publish", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusUpcoming), nil)

		_, err := f.svc.Publish(as(organizer), bookingID)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.ErrorIs(t, err, model.ErrAlreadyPublished)
	})

	t.Run("listing already exists", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusApprovedByBoth), nil)
		f.repo.EXPECT().Publish(gomock.Any(), gomock.Any(), 4, gomock.Any()).Return(model.ErrAlreadyPublished)

		_, err := f.svc.Publish(as(artist), bookingID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrAlreadyPublished)
	})

	t.Run("concurrent publish loses the swap", func(t *testing.T) {
		f := setup(t)

		published := stored(model.StatusUpcoming)
		published.Version = 5

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusApprovedByBoth), nil),
			f.repo.EXPECT().Publish(gomock.Any(), gomock.Any(), 4, gomock.Any()).Return(model.ErrConflict),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(published, nil),
		)

		_, err := f.svc.Publish(as(artist), bookingID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrAlreadyPublished)
	})

	t.Run("not fully approved", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusApprovedBySender), nil)

		_, err := f.svc.Publish(as(organizer), bookingID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})
}

func TestService_Complete(t *testing.T) {
	t.Run("system after the event", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusUpcoming), nil)
		f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).
			DoAndReturn(func(_ context.Context, booking model.Booking, _ int) (bool, error) {
				assert.Equal(t, constant.SystemActor, booking.ModifiedBy)

				return true, nil
			})

		res, err := f.svc.Complete(context.Background(), bookingID, true)
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCompleted), res.Status)
	})

	t.Run("stranger", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusUpcoming), nil)

		_, err := f.svc.Complete(as(stranger), bookingID, false)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestService_RejectAndCancel(t *testing.T) {
	t.Run("receiver rejects", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)
		f.repo.EXPECT().CompareAndSwap(gomock.Any(), gomock.Any(), 4).Return(true, nil)

		res, err := f.svc.Reject(as(artist), bookingID, dto.ReasonRequest{Reason: "touring"})
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCancelled), res.Status)
		require.NotNil(t, res.CancellationReason)
		assert.Equal(t, "touring", *res.CancellationReason)
		assert.Nil(t, res.Contacts)
		assert.NotContains(t, res.VisibleFields, string(model.FieldNameContactInfo))
	})

	t.Run("sender cannot reject", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)

		_, err := f.svc.Reject(as(organizer), bookingID, dto.ReasonRequest{Reason: "changed mind"})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("upcoming cannot be cancelled", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusUpcoming), nil)

		_, err := f.svc.Cancel(as(organizer), bookingID, dto.ReasonRequest{Reason: "rain"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})
}

func TestService_SoftDelete(t *testing.T) {
	t.Run("moves the booking to history", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusAllowed), nil)
		f.repo.EXPECT().Archive(gomock.Any(), gomock.Any(), 4).
			DoAndReturn(func(_ context.Context, history model.History, _ int) error {
				assert.Equal(t, bookingID, history.BookingID)
				assert.Equal(t, model.StatusDeleted, history.Status)
				assert.Equal(t, "duplicate", history.DeletionReason)
				assert.Equal(t, organizer, history.DeletedBy)

				return nil
			})

		err := f.svc.SoftDelete(as(organizer), bookingID, dto.ReasonRequest{Reason: "duplicate"})
		assert.NoError(t, err)
	})

	t.Run("retries after a concurrent edit", func(t *testing.T) {
		f := setup(t)

		edited := stored(model.StatusAllowed)
		edited.Version = 5

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusAllowed), nil),
			f.repo.EXPECT().Archive(gomock.Any(), gomock.Any(), 4).Return(model.ErrConflict),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(edited, nil),
			f.repo.EXPECT().Archive(gomock.Any(), gomock.Any(), 5).Return(nil),
		)

		err := f.svc.SoftDelete(as(artist), bookingID, dto.ReasonRequest{Reason: "duplicate"})
		assert.NoError(t, err)
	})

	t.Run("published event", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusUpcoming), nil)

		err := f.svc.SoftDelete(as(artist), bookingID, dto.ReasonRequest{Reason: "duplicate"})
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidStatus)
	})
}

func TestService_HardDelete(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:  "live booking",
			actor: organizer,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusCancelled), nil)
				f.repo.EXPECT().Purge(gomock.Any(), bookingID).Return(true, nil)
			},
		},
		{
			name:  "history only",
			actor: artist,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
				f.repo.EXPECT().GetHistory(gomock.Any(), gomock.Any()).
					Return(model.History{ID: "h1", BookingID: bookingID, SenderID: organizer, ReceiverID: artist}, nil)
				f.repo.EXPECT().Purge(gomock.Any(), bookingID).Return(true, nil)
			},
		},
		{
			name:  "stranger on history",
			actor: stranger,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
				f.repo.EXPECT().GetHistory(gomock.Any(), gomock.Any()).
					Return(model.History{ID: "h1", BookingID: bookingID, SenderID: organizer, ReceiverID: artist}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:  "nothing to delete",
			actor: artist,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
				f.repo.EXPECT().GetHistory(gomock.Any(), gomock.Any()).Return(model.History{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:  "published event",
			actor: artist,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusUpcoming), nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMock(f)

			err := f.svc.HardDelete(as(tt.actor), bookingID)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_ListMine(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "bookings.sender_id")
			assert.Contains(t, where, "bookings.receiver_id")
			assert.Equal(t, model.StatusApprovedByBoth, args["status"])

			return []model.Booking{stored(model.StatusApprovedByBoth)}, nil
		})

	res, err := f.svc.ListMine(as(artist), gDto.QueryParams{Page: 1, Limit: 10}, "both_parties_approved")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Bookings, 1)
	assert.NotNil(t, res.Bookings[0].Fee)

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.svc.ListMine(as(artist), gDto.QueryParams{}, "archived")
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestService_ListOrdering(t *testing.T) {
	injected := "(SELECT personal_message FROM bookings LIMIT 1)"

	tests := []struct {
		name     string
		params   gDto.QueryParams
		history  bool
		wantCode int
	}{
		{name: "mine by event date", params: gDto.QueryParams{SortBy: model.FieldEventDate, SortDir: gDto.SortDirAsc}},
		{name: "mine by private column", params: gDto.QueryParams{SortBy: model.FieldFee, SortDir: gDto.SortDirAsc}, wantCode: http.StatusBadRequest},
		{name: "mine by subquery", params: gDto.QueryParams{SortBy: injected, SortDir: gDto.SortDirDesc}, wantCode: http.StatusBadRequest},
		{name: "history by default", params: gDto.QueryParams{}, history: true},
		{name: "history by booked at", params: gDto.QueryParams{SortBy: model.FieldBookedAt, SortDir: gDto.SortDirDesc}, history: true},
		{name: "history by subquery", params: gDto.QueryParams{SortBy: injected, SortDir: gDto.SortDirDesc}, history: true, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			var err error

			switch {
			case tt.wantCode != 0 && tt.history:
				_, err = f.svc.ListHistory(as(artist), tt.params)
			case tt.wantCode != 0:
				_, err = f.svc.ListMine(as(artist), tt.params, "")
			case tt.history:
				f.repo.EXPECT().CountHistory(gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().GetAllHistory(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.History, error) {
						assert.Contains(t, model.HistorySortableFields, params.SortBy)

						return []model.History{}, nil
					})

				_, err = f.svc.ListHistory(as(artist), tt.params)
			default:
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), tt.params, gomock.Any()).Return([]model.Booking{}, nil)

				_, err = f.svc.ListMine(as(artist), tt.params, "")
			}

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.ErrorIs(t, err, gDto.ErrInvalidSort)

				return
			}

			require.NoError(t, err)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
