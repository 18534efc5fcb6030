package chordkeys

import "errors"

var (
	// ErrInvalidBinding is returned when a chord token or a binding sequence
	// cannot be parsed. The wrapped message names the offending token.
	ErrInvalidBinding = errors.New("invalid binding")

	// ErrNoSource is returned by New when no event source is given.
	ErrNoSource = errors.New("no event source")

	// ErrUnknownHandle is returned by Rebind for a handle that is not registered.
	ErrUnknownHandle = errors.New("unknown handle")
)
