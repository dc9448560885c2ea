package client

import (
	"errors"

	clienterrors "github.com/tripplanner/tripplanner-client/client/internal/errors"
)

// UserError is the normalized failure returned by every Client operation.
// Its Error method returns a message fit for display.
type UserError = clienterrors.UserError

// Kind identifies which classification branch produced a UserError.
type Kind = clienterrors.Kind

const (
	KindServerStatus = clienterrors.KindServerStatus
	KindNetwork      = clienterrors.KindNetwork
	KindRequestSetup = clienterrors.KindRequestSetup
	KindUnknown      = clienterrors.KindUnknown
)

// Re-export sentinels so callers compare against a single symbol with errors.Is.
var (
	ErrServerStatus = clienterrors.ErrServerStatus
	ErrNetwork      = clienterrors.ErrNetwork
	ErrRequestSetup = clienterrors.ErrRequestSetup
	ErrUnknown      = clienterrors.ErrUnknown
)

// IsNetwork reports whether err means the backend could not be reached.
func IsNetwork(err error) bool { return errors.Is(err, ErrNetwork) }

// StatusCode returns the HTTP status carried by err, or 0 when err is not a
// UserError or no response was received.
func StatusCode(err error) int {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
