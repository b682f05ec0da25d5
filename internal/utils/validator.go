package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("filter", validateFilter)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateFilter accepts structured catalog filters of the form "key=value".
func validateFilter(fl validator.FieldLevel) bool {
	key, value, ok := strings.Cut(fl.Field().String(), "=")
	return ok && strings.TrimSpace(key) != "" && strings.TrimSpace(value) != ""
}
