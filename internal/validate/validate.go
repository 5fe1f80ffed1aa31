// Package validate checks command input before it reaches a registry.
// It wraps go-playground/validator with the planner's own tags:
//
//	datekey  "YYYY-MM-DD" naming a real calendar day
//	clock    zero-padded 24-hour "HH:MM"
//	notblank non-empty after trimming spaces
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xolan/timeflow/internal/timeutil"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation error")

// ValidationError reports the first field that failed a rule.
type ValidationError struct {
	Field string
	Rule  string
	Value string
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field)
	case "clock":
		return fmt.Sprintf("%s must be a 24-hour HH:MM time, got %q", e.Field, e.Value)
	case "datekey":
		return fmt.Sprintf("%s must be a valid YYYY-MM-DD date, got %q", e.Field, e.Value)
	case "oneof":
		return fmt.Sprintf("%s has unsupported value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Rule)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		// Report the json name so messages match what the user typed.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("datekey", func(fl validator.FieldLevel) bool {
			return timeutil.IsDateKey(fl.Field().String())
		})
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return timeutil.IsClock(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		instance = v
	})
	return instance
}

// Struct validates s against its `validate` tags and returns a
// *ValidationError for the first failure.
func Struct(s interface{}) error {
	return structError(get().Struct(s))
}

// StructPartial validates only the named struct fields of s. Fields are Go
// field names, not json names.
func StructPartial(s interface{}, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return structError(get().StructPartial(s, fields...))
}

func structError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Value: fmt.Sprint(fe.Value()),
		}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// Var validates a single value against tag, naming it field in the error.
func Var(field string, value interface{}, tag string) error {
	err := get().Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{
			Field: field,
			Rule:  fieldErrs[0].Tag(),
			Value: fmt.Sprint(value),
		}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
