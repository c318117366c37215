package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrDraftComplete is returned when a pick is attempted after the
	// final pick has been committed.
	ErrDraftComplete = errors.New("draft already completed")
	// ErrCatalogExhausted means the auto picker found no draftable
	// player or coach at all. This is a configuration error, not a
	// recoverable validation failure.
	ErrCatalogExhausted = errors.New("player and coach catalogs exhausted")
	// ErrStaleCursor signals that a concurrent pick advanced the draft
	// cursor first; the losing transaction is rolled back.
	ErrStaleCursor = errors.New("draft cursor moved concurrently")
)
