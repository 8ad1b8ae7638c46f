// Package validation builds validators whose errors read like the rest of the codebase:
// "namespace is empty", "backend[etcd] is not supported".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// custom validation tags
const (
	NotBlankTag           = "notblank"
	NonNegativeDecimalTag = "nonneg_decimal"

	// TogetherTag is reported by struct level validations, Param names the partner field.
	TogetherTag = "together"
)

// New returns a validator naming fields after their `key` tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("key"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(NotBlankTag, notBlankValidation)
	_ = v.RegisterValidation(NonNegativeDecimalTag, nonNegativeDecimalValidation)

	return v
}

// Error translates validator.ValidationErrors into one error per field, other errors pass through.
func Error(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, errors.New(message(fe)))
	}

	return errors.Join(errs...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", NotBlankTag:
		return fmt.Sprintf("%s is empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s[%v] is not supported", fe.Field(), fe.Value())
	case "numeric", "iso4217":
		return fmt.Sprintf("%s[%v] is not valid", fe.Field(), fe.Value())
	case NonNegativeDecimalTag:
		return fmt.Sprintf("%s[%v] is negative", fe.Field(), fe.Value())
	case TogetherTag:
		return fmt.Sprintf("%s and %s must be set together", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s[%v] failed %s", fe.Field(), fe.Value(), fe.Tag())
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func nonNegativeDecimalValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := decimal.NewFromString(str)
	if err != nil {
		return false
	}

	return !d.IsNegative()
}
