// Package validation validates request payloads and reports field errors
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/edupath/backend/internal/models"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	notBlankTag  = "notblank"
	notBlankText = "{0} cannot be blank"
)

func init() {
	validate = validator.New()

	// Register the english error messages for validation errors
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterTranslation(
		notBlankTag, translator,
		func(t ut.Translator) error { return t.Add(notBlankTag, notBlankText, false) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(notBlankTag, fe.Field())
			return s
		},
	)
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

// FieldError is used to indicate an error with a specific request field
type FieldError struct {
	Field string
	Error string
}

// ValidationError reports invalid user input; it matches models.ErrValidation with errors.Is
type ValidationError struct {
	Message string
	Fields  []FieldError
}

// NewValidationError creates a validation error with optional field details
func NewValidationError(message string, fields ...FieldError) error {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		return e.Fields[0].Field + ": " + e.Fields[0].Error
	}
	return models.ErrValidation.Error()
}

// Is makes errors.Is(err, models.ErrValidation) succeed
func (e *ValidationError) Is(target error) bool {
	return target == models.ErrValidation
}

// FieldMap returns the field errors keyed by field name
func (e *ValidationError) FieldMap() map[string]string {
	fields := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Field] = f.Error
	}
	return fields
}

// Struct validates a struct using its validate tags
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	fields := make([]FieldError, 0, len(vErrs))
	for _, fe := range vErrs {
		fields = append(fields, FieldError{Field: fieldPath(fe), Error: fe.Translate(translator)})
	}

	return &ValidationError{Message: "validation failed", Fields: fields}
}

// fieldPath strips the top-level struct name from the namespace, e.g. "answers[0].questionId"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
