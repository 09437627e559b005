package graph

import (
	"github.com/pkg/errors"
)

var (
	// ErrIllegalOperation is a call the vertex or edge lifecycle forbids, such
	// as marking a persisted vertex inferred or committing an inferred one.
	ErrIllegalOperation = errors.New("illegal operation")

	ErrTxClosed             = errors.New("transaction closed")
	ErrAttributeLockNotHeld = errors.New("attribute lock not held")
	ErrDuplicateAttribute   = errors.New("attribute committed concurrently")
	ErrLabelTaken           = errors.New("type label already in use")
	ErrVertexNotFound       = errors.New("vertex not found")
	ErrInvalidValue         = errors.New("invalid stored value")
)
