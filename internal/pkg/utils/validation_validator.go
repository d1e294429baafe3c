package utils

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate       *validator.Validate
	mcpMethodRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)?$`)
)

func init() {
	validate = validator.New()
	// report fields by their JSON names so messages match what callers sent
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("mcp_method", validateMCPMethod)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateMCPMethod(fl validator.FieldLevel) bool {
	return mcpMethodRegex.MatchString(fl.Field().String())
}
