// internal/domain/notification/shared_types.go
package notification

import (
	"errors"
)

// Terminal failures of a notification attempt. All but ErrSyncFailed force a delivered=false sync.
var (
	ErrInvalidPhone       = errors.New("missing or invalid parent phone number")
	ErrMissingCountryCode = errors.New("phone number has no recognised country code")
	ErrIncompleteStudent  = errors.New("student data incomplete: missing name")
	ErrDispatchBlocked    = errors.New("channel link could not be opened")
	ErrSyncFailed         = errors.New("failed to record dispatch outcome")
	ErrUnexpected         = errors.New("unexpected error while dispatching")
)

// User-visible status strings, one per invocation.
const (
	StatusSent               = "WhatsApp opened successfully!"
	StatusInvalidPhone       = "Missing or invalid parent phone number"
	StatusMissingCountryCode = "Country code required. Please add country code (e.g., 20 for Egypt)"
	StatusIncompleteStudent  = "Student data incomplete - missing name"
	StatusDispatchBlocked    = "Popup blocked - please allow popups and try again"
	StatusSyncFailed         = "WhatsApp sent but failed to update status"
	StatusUnexpected         = "Error occurred while opening WhatsApp"
)

// StatusText maps an invocation error to its status string. A nil error is success.
func StatusText(err error) string {
	switch {
	case err == nil:
		return StatusSent
	case errors.Is(err, ErrInvalidPhone):
		return StatusInvalidPhone
	case errors.Is(err, ErrMissingCountryCode):
		return StatusMissingCountryCode
	case errors.Is(err, ErrIncompleteStudent):
		return StatusIncompleteStudent
	case errors.Is(err, ErrDispatchBlocked):
		return StatusDispatchBlocked
	case errors.Is(err, ErrSyncFailed):
		return StatusSyncFailed
	default:
		return StatusUnexpected
	}
}
