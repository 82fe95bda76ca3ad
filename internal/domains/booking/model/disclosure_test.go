package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagebook/internal/domains/booking/model"
)

func TestDiscloseToStranger(t *testing.T) {
	tests := []struct {
		status model.Status
		want   []string
	}{
		{status: model.StatusPending, want: []string{}},
		{status: model.StatusAllowed, want: []string{}},
		{status: model.StatusApprovedByBoth, want: []string{}},
		{status: model.StatusCancelled, want: []string{}},
		{status: model.StatusUpcoming, want: []string{"title"}},
		{status: model.StatusCompleted, want: []string{"title"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			booking := bookingInStatus(t, tt.status)

			view := booking.Disclose(stranger)

			assert.False(t, view.IsParty)
			assert.Equal(t, tt.want, view.Fields)
			assert.Nil(t, view.Contacts)
		})
	}
}

func TestDiscloseToParties(t *testing.T) {
	t.Run("pending hides contacts", func(t *testing.T) {
		booking := newBooking(t)

		for _, party := range []string{sender, receiver} {
			view := booking.Disclose(party)

			assert.True(t, view.IsParty)
			assert.True(t, view.Has("fee"))
			assert.False(t, view.Has("contact_info"))
			assert.Nil(t, view.Contacts)
		}
	})

	t.Run("contacts unlock once allowed", func(t *testing.T) {
		booking := bookingInStatus(t, model.StatusAllowed)

		view := booking.Disclose(sender)

		assert.Equal(t, model.PartySender, view.Party)
		if assert.NotNil(t, view.Contacts) {
			assert.Equal(t, "b@example.com", view.Contacts.Receiver.Email)
		}
		assert.True(t, view.Has("contact_info"))
	})

	tests := []struct {
		name         string
		end          func(t *testing.T, booking *model.Booking)
		wantContacts bool
	}{
		{
			name: "receiver rejects pending request",
			end: func(t *testing.T, booking *model.Booking) {
				require.NoError(t, booking.Reject(receiver, "touring", baseTime))
			},
		},
		{
			name: "sender withdraws pending request",
			end: func(t *testing.T, booking *model.Booking) {
				require.NoError(t, booking.Cancel(sender, "plans changed", baseTime))
			},
		},
		{
			name: "cancelled after allow",
			end: func(t *testing.T, booking *model.Booking) {
				require.NoError(t, booking.Allow(receiver, baseTime))
				require.NoError(t, booking.Cancel(sender, "plans changed", baseTime))
			},
			wantContacts: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := newBooking(t)
			tt.end(t, &booking)
			require.Equal(t, model.StatusCancelled, booking.Status)

			for _, party := range []string{sender, receiver} {
				view := booking.Disclose(party)

				assert.Equal(t, tt.wantContacts, view.Contacts != nil)
				assert.Equal(t, tt.wantContacts, view.Has("contact_info"))
			}
		})
	}
}

func TestVisibleTo(t *testing.T) {
	tests := []struct {
		status model.Status
		viewer string
		want   bool
	}{
		{status: model.StatusPending, viewer: sender, want: true},
		{status: model.StatusPending, viewer: stranger},
		{status: model.StatusAllowed, viewer: stranger},
		{status: model.StatusApprovedByBoth, viewer: stranger},
		{status: model.StatusCancelled, viewer: stranger},
		{status: model.StatusCancelled, viewer: receiver, want: true},
		{status: model.StatusUpcoming, viewer: stranger, want: true},
		{status: model.StatusCompleted, viewer: "", want: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status)+"/"+tt.viewer, func(t *testing.T) {
			booking := bookingInStatus(t, tt.status)

			assert.Equal(t, tt.want, booking.VisibleTo(tt.viewer))
		})
	}
}

func TestStrangerNeverSeesAlwaysPrivateFields(t *testing.T) {
	booking := bookingInStatus(t, model.StatusAllowed)
	confirm(t, &booking, sender, map[string]bool{"title": true, "fee": true, "tech_spec": true, "venue": true})
	confirm(t, &booking, receiver, map[string]bool{"venue": true, "contact_info": true})
	assert.NoError(t, booking.Publish(receiver, baseTime))

	view := booking.Disclose(stranger)

	assert.ElementsMatch(t, []string{"title", "venue"}, view.Fields)

	for _, field := range model.PrivateFields() {
		assert.False(t, view.Has(string(field)), field)
	}
}
