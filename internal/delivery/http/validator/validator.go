// Package validator adapts go-playground/validator to echo.Validator and
// reports failures as domain validation errors.
package validator

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	domainerrors "authn/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// sensitiveTag marks fields whose value must never be echoed back, e.g. `sensitive:"true"`.
const sensitiveTag = "sensitive"

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds a validator that names fields by their JSON tag and knows the notblank rule.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	// Registering a fresh tag with a static func only fails on an empty tag name.
	_ = validate.RegisterValidation("notblank", notBlank)

	return &CustomValidator{validate: validate}
}

// Validate checks i and converts every failed constraint into a FieldError.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "validate request")
	}

	object := objectName(i)
	sensitive := sensitiveFields(i)
	fields := make([]domainerrors.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		var rejected any = fe.Value()
		if sensitive[fe.StructField()] {
			rejected = nil
		}

		fields = append(fields, domainerrors.FieldError{
			Object:        object,
			Field:         fe.Field(),
			RejectedValue: rejected,
			Message:       messageFor(fe),
		})
	}

	return domainerrors.NewValidationError(object, fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "must not be blank"
	case "required":
		return "must not be null"
	case "email":
		return "must be a well-formed email address"
	case "max":
		return "size must be at most " + fe.Param()
	case "min":
		return "size must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == reflect.String {
		return strings.TrimSpace(field.String()) != ""
	}

	return !field.IsZero()
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// objectName turns the payload type name into lowerCamel, e.g. RegisterRequest -> registerRequest.
func objectName(i any) string {
	t := reflect.TypeOf(i)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "request"
	}

	name := t.Name()
	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToLower(r)) + name[size:]
}

func sensitiveFields(i any) map[string]bool {
	t := reflect.TypeOf(i)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	fields := make(map[string]bool)
	for idx := range t.NumField() {
		f := t.Field(idx)
		if f.Tag.Get(sensitiveTag) == "true" {
			fields[f.Name] = true
		}
	}

	return fields
}
