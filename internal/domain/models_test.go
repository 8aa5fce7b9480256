package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_Clone(t *testing.T) {
	seen := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	original := &Mapping{
		Shortcode: "example",
		URL:       "http://example.com",
		Stats: Stats{
			StartDate:     time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
			RedirectCount: 2,
			LastSeenDate:  &seen,
		},
	}

	clone := original.Clone()
	require.NotNil(t, clone.Stats.LastSeenDate)
	assert.Equal(t, original, clone)

	// Mutating the clone must not leak into the original
	clone.Stats.RedirectCount = 99
	*clone.Stats.LastSeenDate = seen.Add(time.Hour)
	assert.Equal(t, int64(2), original.Stats.RedirectCount)
	assert.Equal(t, seen, *original.Stats.LastSeenDate)
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 1, 1, 14, 0, 0, 0, loc)

	assert.Equal(t, "2024-01-01T12:00:00Z", FormatTimestamp(ts))
}

func TestNewStatsResponse(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("never visited", func(t *testing.T) {
		resp := NewStatsResponse(Stats{StartDate: start})

		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"startDate":"2024-01-01T12:00:00Z","redirectCount":0}`, string(body))
	})

	t.Run("visited", func(t *testing.T) {
		seen := start.Add(90 * time.Second)
		resp := NewStatsResponse(Stats{StartDate: start, RedirectCount: 3, LastSeenDate: &seen})

		body, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"startDate":"2024-01-01T12:00:00Z","redirectCount":3,"lastSeenDate":"2024-01-01T12:01:30Z"}`, string(body))
	})
}
