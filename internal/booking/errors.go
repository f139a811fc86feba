package booking

import "fmt"

// Kind tags a submission outcome so handlers can map it to a status code
// and the UI can decide how to present it.  Validation problems are part of
// normal operation and are never logged as exceptional; only Internal
// errors wrap a collaborator failure.
type Kind int

const (
	KindAuth       Kind = iota + 1 // no signed-in identity
	KindValidation                 // missing/malformed fields, honeypot, date order
	KindConflict                   // proposed range overlaps an existing booking
	KindRateLimit                  // sliding-window cap exceeded
	KindPermission                 // non-owner delete attempt
	KindNotFound                   // booking id unknown
	KindInternal                   // collaborator failure (store, broker, ...)
)

// Error is a user-facing submission error.  Message is always safe to show
// to the visitor; for Internal errors it is extracted best-effort from the
// wrapped cause, falling back to a generic text when the cause carries no
// message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, only set for KindInternal
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// genericFailure is shown when a collaborator error has no usable message.
const genericFailure = "action failed, please try again later"

// internalError wraps a collaborator failure with a best-effort
// human-readable message.
func internalError(err error) *Error {
	msg := genericFailure
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// reject builds a terminal, non-internal rejection.
func reject(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
