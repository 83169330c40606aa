package booking

import "fmt"

// BookingError is a business-level rejection: the request was well formed
// but cannot be satisfied. Handlers map these to 4xx responses.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSlotUnavailableError() error {
	return &BookingError{
		Code:    "slotUnavailable",
		Message: "the requested time slot is no longer available",
	}
}

func NewNoHostAvailableError() error {
	return &BookingError{
		Code:    "noHostAvailable",
		Message: "no host is available for the requested time slot",
	}
}

func NewInvalidInputError(msg string) error {
	return &BookingError{
		Code:    "invalidInput",
		Message: msg,
	}
}
