package scheduling

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a gateway failure so callers can branch on
// recoverability. Read paths never surface these; mutation paths always do.
type ErrorCode string

const (
	// ErrCodeCartExpired is terminal: the upstream cart TTL elapsed and the
	// booking flow must restart with a fresh cart.
	ErrCodeCartExpired ErrorCode = "cart_expired"
	// ErrCodeSlotUnavailable is recoverable: another party reserved the slot
	// first; the caller must re-query times and let the user pick again.
	ErrCodeSlotUnavailable ErrorCode = "slot_unavailable"
	// ErrCodeInvalidCode means the submitted ownership code was wrong; the
	// verification state stays at code_sent and the code may be resubmitted.
	ErrCodeInvalidCode ErrorCode = "invalid_code"
	// ErrCodeClientInfoRequired means ownership verified but the upstream did
	// not already know the client; identity fields must be collected.
	ErrCodeClientInfoRequired ErrorCode = "client_info_required"
	// ErrCodeNotBookable is a configuration problem: the requested
	// service/location/staff combination has no upstream catalog mapping.
	ErrCodeNotBookable ErrorCode = "not_bookable"
	// ErrCodeUpstream is any unclassified upstream failure; the caller
	// surfaces a generic retry prompt.
	ErrCodeUpstream ErrorCode = "upstream"
)

// BookingError is the classified error returned by cart-mutating gateway
// operations.
type BookingError struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.cause
}

func newBookingError(code ErrorCode, msg string, cause error) *BookingError {
	return &BookingError{Code: code, Message: msg, cause: cause}
}

// IsCode reports whether err is a BookingError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
