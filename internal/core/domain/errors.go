package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Outline command errors. A command returning one of these left the
	// tree untouched.

	// ErrAnchorSection indicates a depth change was requested for the first
	// section, which always anchors numbering at "1".
	ErrAnchorSection = errors.New("first section anchors numbering")

	// ErrDepthJump indicates a depth change more than one level deeper
	// than the preceding section.
	ErrDepthJump = errors.New("depth jump too large")

	// ErrNoNeighbour indicates a move past the start or end of the outline.
	ErrNoNeighbour = errors.New("no adjacent section")

	// ErrCrossDepthSwap indicates a move between sections of different
	// depth while strict swapping is enabled.
	ErrCrossDepthSwap = errors.New("adjacent section has a different depth")

	// Persistence API errors.

	// ErrAuthRequired indicates the persistence API rejected the credentials.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrRemote indicates the persistence API reported a failure.
	ErrRemote = errors.New("persistence API error")
)
