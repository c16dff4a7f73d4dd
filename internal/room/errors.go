// internal/room/errors.go
//
// Error taxonomy for room operations:
//   - ValidationError: malformed or missing input; the caller can fix and retry.
//   - NotFoundError:   unknown room or player id.
//   - StateError:      operation disallowed in the room's current state
//                      (e.g. mutating an ended room).
//
// All are matchable with errors.As. None are retried internally.

package room

import "fmt"

// ValidationError reports malformed or missing required input.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown room or player id.
type NotFoundError struct {
	Msg string
}

func (e NotFoundError) Error() string { return e.Msg }

func notFoundErrorf(format string, args ...any) error {
	return NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// StateError reports an operation disallowed by the room's current state.
type StateError struct {
	Msg string
}

func (e StateError) Error() string { return e.Msg }
