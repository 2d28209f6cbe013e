package cluster

import "errors"

// Cluster errors.
var (
	// ErrUnknownKind is returned when a node kind cannot be parsed.
	ErrUnknownKind = errors.New("cluster: unknown node kind")

	// ErrCardinalityChanged is returned when a replacement list has a different size.
	ErrCardinalityChanged = errors.New("cluster: cardinality changed")

	// ErrMultipleLeaders is returned when a replacement list holds more than one leader.
	ErrMultipleLeaders = errors.New("cluster: more than one leader")

	// ErrKindMismatch is returned when a replacement list carries nodes of another kind.
	ErrKindMismatch = errors.New("cluster: node kind mismatch")
)
