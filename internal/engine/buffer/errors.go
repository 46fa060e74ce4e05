package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer and snapshot operations.
var (
	// ErrOutOfRange indicates an offset, line number or count outside its valid domain.
	ErrOutOfRange = errors.New("out of range")

	// ErrSnapshotMismatch indicates values from different snapshots were combined.
	ErrSnapshotMismatch = errors.New("snapshot mismatch")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrEditsOverlap indicates edits overlap or are not in reverse order.
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")
)

func outOfRange(what string, value, limit int) error {
	return fmt.Errorf("%w: %s %d not in [0, %d]", ErrOutOfRange, what, value, limit)
}
