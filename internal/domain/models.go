package domain

import (
	"time"
)

// TimestampFormat is the wire format for stats timestamps (UTC, second precision)
const TimestampFormat = "2006-01-02T15:04:05Z"

// Stats holds the usage statistics of a mapping
type Stats struct {
	StartDate     time.Time
	RedirectCount int64
	LastSeenDate  *time.Time
}

// Mapping represents a shortcode and the URL it redirects to
type Mapping struct {
	Shortcode string
	URL       string
	Stats     Stats
}

// Clone returns a deep copy so callers never share state with the store
func (m *Mapping) Clone() *Mapping {
	clone := *m
	if m.Stats.LastSeenDate != nil {
		seen := *m.Stats.LastSeenDate
		clone.Stats.LastSeenDate = &seen
	}
	return &clone
}

// FormatTimestamp renders t in the wire format
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// ShortenRequest represents the request body of POST /shorten.
// A nil Shortcode means the caller asked for a generated code.
type ShortenRequest struct {
	URL       string  `json:"url"`
	Shortcode *string `json:"shortcode,omitempty"`
}

// ShortenResponse represents the response when creating a mapping
type ShortenResponse struct {
	Shortcode string `json:"shortcode"`
}

// StatsResponse represents the response of GET /{shortcode}/stats
type StatsResponse struct {
	StartDate     string  `json:"startDate"`
	RedirectCount int64   `json:"redirectCount"`
	LastSeenDate  *string `json:"lastSeenDate,omitempty"`
}

// NewStatsResponse converts a stats snapshot into its wire representation
func NewStatsResponse(stats Stats) StatsResponse {
	resp := StatsResponse{
		StartDate:     FormatTimestamp(stats.StartDate),
		RedirectCount: stats.RedirectCount,
	}
	if stats.LastSeenDate != nil {
		seen := FormatTimestamp(*stats.LastSeenDate)
		resp.LastSeenDate = &seen
	}
	return resp
}

// ErrorResponse is the JSON body returned with every error status
type ErrorResponse struct {
	Error string `json:"error"`
}
