package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedSlot struct {
	Start string `json:"start_time" validate:"hhmm"`
	Title string `json:"title" validate:"notblank"`
}

func TestValidators(t *testing.T) {
	validate, translator := NewValidator()

	tests := []struct {
		name       string
		slot       validatedSlot
		wantFields map[string]string
	}{
		{name: "valid", slot: validatedSlot{Start: "09:30", Title: "Math"}},
		{name: "midnight", slot: validatedSlot{Start: "00:00", Title: "Math"}},
		{
			name:       "not padded",
			slot:       validatedSlot{Start: "9:30", Title: "Math"},
			wantFields: map[string]string{"start_time": hhmmText},
		},
		{
			name:       "out of range",
			slot:       validatedSlot{Start: "24:00", Title: "Math"},
			wantFields: map[string]string{"start_time": hhmmText},
		},
		{
			name:       "blank title",
			slot:       validatedSlot{Start: "10:00", Title: "  "},
			wantFields: map[string]string{"title": notBlankText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.slot)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			got := make(map[string]string)
			for _, f := range TranslateValidationErrors(verrs, translator) {
				got[f.Field] = f.Error
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}
