package identity

import (
	"fmt"

	"github.com/mcoot/sessionflow/internal/model"
)

// TransportError describes a round trip that produced no usable outcome
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, model.ErrTransport, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is
func (e *TransportError) Unwrap() []error {
	return []error{model.ErrTransport, e.Err}
}

func transportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}
