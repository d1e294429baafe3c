package utils

import (
	"assistant-service/internal/pkg/constvars"
	"assistant-service/internal/pkg/exceptions"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupParam(t *testing.T) {
	tests := []struct {
		name      string
		params    map[string]interface{}
		canonical string
		want      interface{}
		found     bool
	}{
		{"Canonical key", map[string]interface{}{"date": "2025-09-08"}, constvars.ParamDate, "2025-09-08", true},
		{"Alias key", map[string]interface{}{"on": "2025-09-08"}, constvars.ParamDate, "2025-09-08", true},
		{"Case insensitive", map[string]interface{}{"DateTime": "2025-09-08T09:00"}, constvars.ParamDateTime, "2025-09-08T09:00", true},
		{"First alias wins", map[string]interface{}{"on": "b", "day": "a"}, constvars.ParamDate, "a", true},
		{"Null value is skipped", map[string]interface{}{"date": nil, "day": "a"}, constvars.ParamDate, "a", true},
		{"Missing", map[string]interface{}{"subject": "maths"}, constvars.ParamDate, nil, false},
		{"Unknown canonical", map[string]interface{}{"custom": 1}, "custom", 1, true},
		{"Nil params", nil, constvars.ParamDate, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := LookupParam(tt.params, tt.canonical)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapMCPParamsToTimetableParams(t *testing.T) {
	t.Run("Aliases and number formatting", func(t *testing.T) {
		params := MapMCPParamsToTimetableParams(map[string]interface{}{
			"when":    "2025-09-08T09:30",
			"since":   "2025-09-08",
			"query":   "  Maths ",
			"ordinal": float64(2),
		})
		assert.Equal(t, "2025-09-08T09:30", params.DateTime)
		assert.Equal(t, "2025-09-08", params.From)
		assert.Equal(t, "Maths", params.Subject)
		assert.Equal(t, "2", params.Period)
		assert.False(t, params.Last)
	})

	t.Run("Last keyword as period", func(t *testing.T) {
		params := MapMCPParamsToTimetableParams(map[string]interface{}{"n": "LAST"})
		assert.True(t, params.Last)
		assert.Empty(t, params.Period)
	})

	t.Run("Last flag as string", func(t *testing.T) {
		params := MapMCPParamsToTimetableParams(map[string]interface{}{"last": "true"})
		assert.True(t, params.Last)

		params = MapMCPParamsToTimetableParams(map[string]interface{}{"last": "nope"})
		assert.False(t, params.Last)
	})
}

func TestMapMCPParamsToGeocodeParams(t *testing.T) {
	t.Run("Default limit", func(t *testing.T) {
		params, err := MapMCPParamsToGeocodeParams(map[string]interface{}{"address": "Paris"})
		require.NoError(t, err)
		assert.Equal(t, "Paris", params.Query)
		assert.Equal(t, constvars.GeoDefaultLimit, params.Limit)
	})

	t.Run("Missing query", func(t *testing.T) {
		_, err := MapMCPParamsToGeocodeParams(map[string]interface{}{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.ErrKindValidation))
		assert.Equal(t, "q is required", exceptions.ClientMessage(err))
	})

	t.Run("Limit out of range", func(t *testing.T) {
		_, err := MapMCPParamsToGeocodeParams(map[string]interface{}{"q": "Paris", "limit": 51})
		require.Error(t, err)
		assert.Equal(t, "limit must be less than or equal to 50", exceptions.ClientMessage(err))
	})

	t.Run("Limit not a number", func(t *testing.T) {
		_, err := MapMCPParamsToGeocodeParams(map[string]interface{}{"q": "Paris", "limit": "many"})
		require.Error(t, err)
		assert.Equal(t, `invalid limit "many"`, exceptions.ClientMessage(err))
	})
}

func TestParseReverseParams(t *testing.T) {
	params, err := ParseReverseParams("48.85", "2.35")
	require.NoError(t, err)
	assert.Equal(t, 48.85, params.Lat)
	assert.Equal(t, 2.35, params.Lon)

	for _, tc := range [][2]string{{"abc", "2"}, {"91", "2"}, {"1", "-181"}, {"", ""}} {
		_, err := ParseReverseParams(tc[0], tc[1])
		assert.Error(t, err, "lat=%s lon=%s", tc[0], tc[1])
		assert.True(t, errors.Is(err, exceptions.ErrKindValidation))
	}
}
