package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateConversation signals a second account for one conversation.
	// Under correct per-conversation serialization this never fires; treat it
	// as a high-severity anomaly, not a normal branch.
	ErrDuplicateConversation = errors.New("duplicate conversation")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
