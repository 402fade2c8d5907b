package graph

import "errors"

// Sentinel errors for the store adapter. Callers match them with errors.Is.
var (
	// ErrNotFound reports that a requested entity has no matching node.
	// Lookup methods return (nil, nil) for missing nodes; ErrNotFound is
	// reserved for operations that require the node to exist.
	ErrNotFound = errors.New("graph: not found")

	// ErrDuplicateKey reports a create targeting a key that already exists.
	ErrDuplicateKey = errors.New("graph: duplicate key")

	// ErrStoreUnavailable reports that the graph store connection failed.
	// It is retryable.
	ErrStoreUnavailable = errors.New("graph: store unavailable")
)
