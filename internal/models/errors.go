package models

import "errors"

// Storage errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID format")
)

// Pipeline error taxonomy
var (
	// ErrUpstreamUnavailable means a provider fetch failed or came back empty.
	// The current step returns early without writes.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMissingTeamStats skips a single matchup.
	ErrMissingTeamStats = errors.New("missing team stats")
	// ErrMalformedLine skips a single market line.
	ErrMalformedLine = errors.New("malformed betting line")
	// ErrPersistence is propagated to the caller of the run.
	ErrPersistence = errors.New("persistence failure")
)
