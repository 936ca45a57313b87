package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// labels maps struct field names to their flag names, used in error messages.
//
//nolint:gochecknoglobals
var labels = sync.OnceValue(func() map[string]string {
	m := make(map[string]string)
	collectLabels(reflect.TypeOf(Config{}), m)

	return m
})

func collectLabels(t reflect.Type, m map[string]string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collectLabels(field.Type, m)

			continue
		}

		if name := labelOf(field); name != "" {
			m[field.Name] = name
		}
	}
}

// labelOf returns the label tag of a field, or its name.
func labelOf(fld reflect.StructField) string {
	const splitSize = 2

	name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
	if name == "" || name == "-" {
		return fld.Name
	}

	return name
}

// newValidator returns a validator with the exclusive rule and label-based field names.
func newValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerExclusive(validate); err != nil {
		return nil, err
	}

	validate.RegisterTagNameFunc(labelOf)

	return validate, nil
}

// registerExclusive adds a custom validator ensuring two fields are mutually exclusive.
func registerExclusive(validate *validator.Validate) error {
	if err := validate.RegisterValidation("exclusive", validateExclusive); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	return nil
}

// validateExclusive checks if two fields are mutually exclusive.
// Returns false if both fields have non-empty values.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	otherField := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !otherField.IsValid() {
		return true
	}

	if field.Kind() == reflect.String && otherField.Kind() == reflect.String {
		return field.String() == "" || otherField.String() == ""
	}

	return true
}

// describe turns validation errors into one line per failed rule.
func describe(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	msgs := make([]string, 0, len(errs))

	for _, e := range errs {
		switch e.Tag() {
		case "exclusive":
			other := e.Param()
			if label, ok := labels()[other]; ok {
				other = label
			}

			msgs = append(msgs, fmt.Sprintf("%s is mutually exclusive with %s", e.Field(), other))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %v", e.Field(), e.Param(), e.Value()))
		case "required", "required_unless":
			msgs = append(msgs, e.Field()+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed the %q rule", e.Field(), e.Tag()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}
