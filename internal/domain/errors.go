package domain

import "errors"

// Sentinel errors shared by every layer. The HTTP transport maps each of them
// to a status code with errors.Is.
var (
	// ErrInvalidRequest is returned when a required field is missing or blank.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidShortcode is returned when a requested shortcode fails the grammar.
	ErrInvalidShortcode = errors.New("invalid shortcode")

	// ErrShortcodeTaken is returned when a shortcode is already mapped.
	ErrShortcodeTaken = errors.New("shortcode already in use")

	// ErrNotFound is returned when no mapping exists for a shortcode.
	ErrNotFound = errors.New("shortcode not found")
)
