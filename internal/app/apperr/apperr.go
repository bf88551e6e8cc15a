// Package apperr defines the error taxonomy shared by the lifecycle engine and
// the HTTP layer. Business errors are values callers switch on with errors.Is;
// store and collaborator failures are wrapped so operators keep the cause.
package apperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"
)

type Kind int

const (
	Internal Kind = iota
	InvalidTransition
	Forbidden
	AlreadyAssigned
	NoFundsAvailable
	DependencyFailure
	Unavailable
	Conflict
	NotFound
	BadInput
)

var kindNames = map[Kind]string{
	Internal:          "internal",
	InvalidTransition: "invalid_transition",
	Forbidden:         "forbidden",
	AlreadyAssigned:   "already_assigned",
	NoFundsAvailable:  "no_funds_available",
	DependencyFailure: "dependency_failure",
	Unavailable:       "unavailable",
	Conflict:          "conflict",
	NotFound:          "not_found",
	BadInput:          "bad_input",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error carries a Kind, the operation that produced it and an optional cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidTransition = &Error{Kind: InvalidTransition}
	ErrForbidden         = &Error{Kind: Forbidden}
	ErrAlreadyAssigned   = &Error{Kind: AlreadyAssigned}
	ErrNoFundsAvailable  = &Error{Kind: NoFundsAvailable}
	ErrDependencyFailure = &Error{Kind: DependencyFailure}
	ErrUnavailable       = &Error{Kind: Unavailable}
	ErrConflict          = &Error{Kind: Conflict}
	ErrNotFound          = &Error{Kind: NotFound}
	ErrBadInput          = &Error{Kind: BadInput}
)

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Retryable reports whether the caller may retry err with backoff.
func Retryable(err error) bool {
	return KindOf(err) == Unavailable
}

// FromStore classifies an error returned by the store. Errors that already
// carry a Kind pass through untouched.
func FromStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(NotFound, op, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Wrap(Unavailable, op, err)
	case errors.Is(err, driver.ErrBadConn):
		return Wrap(Unavailable, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(Conflict, op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(Unavailable, op, err)
	}
	return Wrap(Internal, op, err)
}
