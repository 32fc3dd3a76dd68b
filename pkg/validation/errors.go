package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-ideaform/pkg/model"
)

// Error carries the field errors that blocked a guarded transition.
type Error struct {
	Step   int
	Fields []FieldError
}

func (e *Error) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field.Field, field.Message))
	}
	return fmt.Sprintf("validation: step %d: %s", e.Step, strings.Join(parts, "; "))
}

// Message returns the message attached to field, if any.
func (e *Error) Message(field model.Field) string {
	if e == nil {
		return ""
	}
	for _, candidate := range e.Fields {
		if candidate.Field == field {
			return candidate.Message
		}
	}
	return ""
}

// NewError returns nil when fields is empty so callers can return it directly.
func NewError(step int, fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Step: step, Fields: fields}
}
