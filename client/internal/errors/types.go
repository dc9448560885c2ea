// Package errors provides outcome classification for the client SDK.
// Every failed call is reduced to a single UserError carrying a
// human-readable message.
package errors

import (
	"errors"
	"fmt"
)

// Kind identifies which branch of the classification produced a UserError.
type Kind int

const (
	// KindServerStatus means the backend answered with a non-2xx status.
	KindServerStatus Kind = iota

	// KindNetwork means the request was dispatched but no response arrived
	// (timeout, connection refused, DNS failure).
	KindNetwork

	// KindRequestSetup means the request could not be built or dispatched.
	KindRequestSetup

	// KindUnknown is the fallback when no other information is available.
	KindUnknown
)

// Sentinels matched by UserError.Is so callers can branch with errors.Is.
var (
	ErrServerStatus = errors.New("server status error")
	ErrNetwork      = errors.New("network error")
	ErrRequestSetup = errors.New("request setup error")
	ErrUnknown      = errors.New("unknown error")
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindServerStatus:
		return "ServerStatusError"
	case KindNetwork:
		return "NetworkError"
	case KindRequestSetup:
		return "RequestSetupError"
	case KindUnknown:
		return "UnknownError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindServerStatus:
		return ErrServerStatus
	case KindNetwork:
		return ErrNetwork
	case KindRequestSetup:
		return ErrRequestSetup
	default:
		return ErrUnknown
	}
}

// UserError is the only error shape handed back to SDK callers.
// Error returns Message verbatim.
type UserError struct {
	Kind       Kind
	Message    string
	StatusCode int // HTTP status code (0 when no response was received)
}

// Error implements the error interface.
func (e *UserError) Error() string {
	return e.Message
}

// Is reports whether target is the sentinel for e's kind.
func (e *UserError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Rewrap returns the single operation-level error for err. The classified
// message is kept when present; fallback is used only when it is empty.
// A nil err yields nil.
func Rewrap(err error, fallback string) *UserError {
	if err == nil {
		return nil
	}
	var ue *UserError
	if !errors.As(err, &ue) {
		msg := err.Error()
		if msg == "" {
			msg = fallback
		}
		return &UserError{Kind: KindUnknown, Message: msg}
	}
	out := *ue
	if out.Message == "" {
		out.Message = fallback
	}
	return &out
}
