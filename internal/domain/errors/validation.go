package errors

import "strings"

// FieldError describes a single rejected input field.
type FieldError struct {
	Object        string // Name of the validated payload, e.g. "registerRequest"
	Field         string // Wire name of the field, e.g. "email"
	RejectedValue any    // Offending value; nil for secrets
	Message       string // Constraint description, e.g. "must not be blank"
}

// ValidationError carries every field that failed validation for one payload.
type ValidationError struct {
	object string
	fields []FieldError
}

// NewValidationError creates a validation failure for the named payload.
func NewValidationError(object string, fields []FieldError) *ValidationError {
	return &ValidationError{
		object: object,
		fields: fields,
	}
}

func (e *ValidationError) Error() string {
	if len(e.fields) == 0 {
		return ErrValidationFailed.Message()
	}

	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Field+" "+f.Message)
	}

	return ErrValidationFailed.Message() + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidationFailed) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) Kind() Kind {
	return KindValidation
}

func (e *ValidationError) ErrorCode() string {
	return ErrValidationFailed.ErrorCode()
}

func (e *ValidationError) Message() string {
	return ErrValidationFailed.Message()
}

// Object returns the payload name.
func (e *ValidationError) Object() string {
	return e.object
}

// Fields returns the rejected fields in validation order.
func (e *ValidationError) Fields() []FieldError {
	return e.fields
}
