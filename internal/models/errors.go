// internal/models/errors.go
package models

import "errors"

// Domain error taxonomy. Callers discriminate with errors.Is; services wrap
// these with context via fmt.Errorf("...: %w", err).
var (
	// ErrValidation marks a bad field value: negative price or quantity,
	// non-positive dimension, empty required string.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown product, order or user id.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock is returned by a reserve attempt that exceeds the
	// available stock. It is raised before any stock mutation occurs.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidState marks an illegal order state transition attempt.
	ErrInvalidState = errors.New("invalid order state")

	// ErrInvalidStatus marks a status value outside the canonical set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrBadData marks a malformed or unrecognized persisted row.
	ErrBadData = errors.New("bad persisted data")

	// ErrOutOfRange marks a line item index outside the order.
	ErrOutOfRange = errors.New("index out of range")

	// ErrInvalidItem marks an object that is not a valid product snapshot.
	ErrInvalidItem = errors.New("invalid line item")
)
