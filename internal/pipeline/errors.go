package pipeline

import "errors"

var (
	// ErrMissingInput: the role's file does not exist. The role is skipped.
	ErrMissingInput = errors.New("input image not found")
	// ErrUnreadableInput: the file exists but cannot be decoded. The role halts.
	ErrUnreadableInput = errors.New("input image unreadable")
	// ErrWriteFailed aborts the whole run.
	ErrWriteFailed = errors.New("failed to write output")
)
