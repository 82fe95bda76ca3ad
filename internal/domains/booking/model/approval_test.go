package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagebook/internal/domains/booking/model"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		status     model.Status
		actor      string
		input      model.ConfirmInput
		wantErr    error
		wantStatus model.Status
	}{
		{
			name:       "sender first",
			status:     model.StatusAllowed,
			actor:      sender,
			input:      model.ConfirmInput{Visibility: map[string]bool{"title": true}, Acknowledged: true},
			wantStatus: model.StatusApprovedBySender,
		},
		{
			name:       "receiver first",
			status:     model.StatusAllowed,
			actor:      receiver,
			input:      model.ConfirmInput{Acknowledged: true},
			wantStatus: model.StatusApprovedByReceiver,
		},
		{
			name:       "receiver second",
			status:     model.StatusApprovedBySender,
			actor:      receiver,
			input:      model.ConfirmInput{Acknowledged: true},
			wantStatus: model.StatusApprovedByBoth,
		},
		{
			name:       "sender second",
			status:     model.StatusApprovedByReceiver,
			actor:      sender,
			input:      model.ConfirmInput{Acknowledged: true},
			wantStatus: model.StatusApprovedByBoth,
		},
		{
			name:    "stranger",
			status:  model.StatusAllowed,
			actor:   stranger,
			input:   model.ConfirmInput{Acknowledged: true},
			wantErr: model.ErrUnauthorized,
		},
		{
			name:    "without acknowledgment",
			status:  model.StatusAllowed,
			actor:   sender,
			input:   model.ConfirmInput{},
			wantErr: model.ErrValidation,
		},
		{
			name:    "twice by the same party",
			status:  model.StatusApprovedBySender,
			actor:   sender,
			input:   model.ConfirmInput{Acknowledged: true},
			wantErr: model.ErrAlreadyConfirmed,
		},
		{
			name:    "still pending",
			status:  model.StatusPending,
			actor:   sender,
			input:   model.ConfirmInput{Acknowledged: true},
			wantErr: model.ErrInvalidStatus,
		},
		{
			name:    "already approved by both",
			status:  model.StatusApprovedByBoth,
			actor:   sender,
			input:   model.ConfirmInput{Acknowledged: true},
			wantErr: model.ErrAlreadyConfirmed,
		},
		{
			name:    "published",
			status:  model.StatusUpcoming,
			actor:   receiver,
			input:   model.ConfirmInput{Acknowledged: true},
			wantErr: model.ErrInvalidStatus,
		},
		{
			name:    "unknown field name",
			status:  model.StatusAllowed,
			actor:   sender,
			input:   model.ConfirmInput{Visibility: map[string]bool{"favourite_colour": true}, Acknowledged: true},
			wantErr: model.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := bookingInStatus(t, tt.status)
			before := booking.Status

			summary, err := booking.Confirm(tt.actor, tt.input, baseTime)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, booking.Status)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, booking.Status)
			assert.Equal(t, tt.actor, summary.ActorID)
			assert.Equal(t, tt.wantStatus, summary.Status)
		})
	}
}

func TestConfirmDropsAlwaysPrivateFields(t *testing.T) {
	booking := bookingInStatus(t, model.StatusAllowed)

	_, err := booking.Confirm(sender, model.ConfirmInput{
		Visibility: map[string]bool{
			"title":             true,
			"fee":               true,
			"price":             true,
			"contact_info":      true,
			"personal_message":  true,
			"tech_spec":         true,
			"hospitality_rider": true,
		},
		Acknowledged: true,
	}, baseTime)

	require.NoError(t, err)
	assert.Equal(t, model.Visibility{model.FieldNameTitle: true}, booking.PublicVisibility)
	assert.True(t, booking.IsPublicAfterApproval)

	summary := booking.AgreementSummaries[0]
	assert.Equal(t, []string{"title"}, summary.PublicFields)
	assert.Contains(t, summary.PrivateFields, "fee")
	assert.Contains(t, summary.PrivateFields, "venue")
}

func TestConfirmMergesVisibility(t *testing.T) {
	booking := bookingInStatus(t, model.StatusAllowed)

	confirm(t, &booking, sender, map[string]bool{"title": true, "ticket_price": false, "venue": true})
	confirm(t, &booking, receiver, map[string]bool{"title": true, "venue": false, "event_date": true})

	assert.Equal(t, model.StatusApprovedByBoth, booking.Status)
	assert.Equal(t, model.Visibility{
		model.FieldNameTitle:       true,
		model.FieldNameTicketPrice: false,
		model.FieldNameVenue:       false,
		model.FieldNameEventDate:   true,
	}, booking.PublicVisibility)
	assert.Len(t, booking.AgreementSummaries, 2)
}

func TestConfirmWithNothingPublic(t *testing.T) {
	booking := bookingInStatus(t, model.StatusAllowed)

	confirm(t, &booking, sender, map[string]bool{"title": false})

	assert.False(t, booking.IsPublicAfterApproval)
}
