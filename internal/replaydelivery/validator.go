package replaydelivery

import "github.com/go-playground/validator/v10"

// ValidFormat validates whether the report format is supported.
var ValidFormat validator.Func = func(fl validator.FieldLevel) bool {
	if f, ok := fl.Field().Interface().(string); ok {
		return f == FormatJSON || f == FormatCSV
	}
	return false
}
