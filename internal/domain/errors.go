package domain

import (
	"errors"
	"fmt"
)

// Kind classifies failures surfaced to the user.
type Kind string

const (
	KindProviderUnavailable Kind = "provider_unavailable"
	KindUserRejected        Kind = "user_rejected"
	KindWrongNetwork        Kind = "wrong_network"
	KindNotConnected        Kind = "not_connected"
	KindInvalidInput        Kind = "invalid_input"
	KindContractReverted    Kind = "contract_reverted"
	KindCallFailed          Kind = "call_failed"
	KindFetchFailed         Kind = "fetch_failed"
)

// Error carries a Kind plus a message fit for display. Field is set for
// InvalidInput and names the offending form field.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrInvalidInput) works
// regardless of field and message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Field == "" && t.Msg == "" && t.Err == nil
}

var (
	ErrProviderUnavailable = &Error{Kind: KindProviderUnavailable}
	ErrUserRejected        = &Error{Kind: KindUserRejected}
	ErrWrongNetwork        = &Error{Kind: KindWrongNetwork}
	ErrNotConnected        = &Error{Kind: KindNotConnected}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrContractReverted    = &Error{Kind: KindContractReverted}
	ErrCallFailed          = &Error{Kind: KindCallFailed}
	ErrFetchFailed         = &Error{Kind: KindFetchFailed}
)

func InvalidInput(field, format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Field: field, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or CallFailed.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindCallFailed
}

// FieldOf returns the offending field of an InvalidInput error.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
