package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagebook/internal/domains/booking/model"
)

func TestVisibilityMerge(t *testing.T) {
	tests := []struct {
		name  string
		base  model.Visibility
		other model.Visibility
		want  model.Visibility
	}{
		{
			name:  "empty base takes other",
			base:  nil,
			other: model.Visibility{model.FieldNameTitle: true},
			want:  model.Visibility{model.FieldNameTitle: true},
		},
		{
			name:  "false wins over true",
			base:  model.Visibility{model.FieldNameVenue: true},
			other: model.Visibility{model.FieldNameVenue: false},
			want:  model.Visibility{model.FieldNameVenue: false},
		},
		{
			name:  "true cannot override false",
			base:  model.Visibility{model.FieldNameVenue: false},
			other: model.Visibility{model.FieldNameVenue: true},
			want:  model.Visibility{model.FieldNameVenue: false},
		},
		{
			name:  "disjoint fields are kept",
			base:  model.Visibility{model.FieldNameTitle: true},
			other: model.Visibility{model.FieldNameAddress: false},
			want:  model.Visibility{model.FieldNameTitle: true, model.FieldNameAddress: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.base.Merge(tt.other))
		})
	}
}

func TestParseVisibility(t *testing.T) {
	settings, err := model.ParseVisibility(map[string]bool{"title": true, "door_percentage": true})

	require.NoError(t, err)
	assert.Equal(t, model.Visibility{model.FieldNameTitle: true}, settings)

	_, err = model.ParseVisibility(map[string]bool{"secret": true})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestVisibilityScanIgnoresUnknownFields(t *testing.T) {
	var settings model.Visibility

	err := settings.Scan([]byte(`{"title":true,"fee":true,"venue":false}`))

	require.NoError(t, err)
	assert.Equal(t, model.Visibility{model.FieldNameTitle: true, model.FieldNameVenue: false}, settings)
	assert.Equal(t, []string{"title"}, settings.PublicFieldNames())
}

func TestNoPrivateFieldIsShareable(t *testing.T) {
	for _, field := range model.PrivateFields() {
		_, err := model.ParseShareableField(string(field))
		assert.ErrorIs(t, err, model.ErrValidation, field)
		assert.True(t, model.IsAlwaysPrivate(string(field)))
	}
}
