package relay

import "errors"

var (
	// ErrEmptyTaskID indicates a status query without a task identifier.
	ErrEmptyTaskID = errors.New("task id cannot be empty")

	// ErrUnknownCallbackKind indicates a provider callback whose
	// callbackType is outside the documented set. The cache is left
	// untouched; the HTTP layer still acknowledges the delivery.
	ErrUnknownCallbackKind = errors.New("unknown callback kind")
)
