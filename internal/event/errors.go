package event

import (
	"fmt"

	"github.com/pkg/errors"
)

// MalformedError reports an invocation payload that could not be decoded.
type MalformedError struct {
	Cause error
}

func (m *MalformedError) Error() string {
	return fmt.Sprintf("malformed event: %v", m.Cause)
}

func (m *MalformedError) Unwrap() error {
	return m.Cause
}

// NewMalformedError builds a MalformedError from a format string.
func NewMalformedError(format string, args ...any) error {
	return &MalformedError{Cause: errors.Errorf(format, args...)}
}
