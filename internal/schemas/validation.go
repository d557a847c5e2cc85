package schemas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationDetails flattens a binding error into a field->message map
// suitable for a 422 response body.
func ValidationDetails(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"body": "malformed request"}
	}
	details := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details[strings.ToLower(fieldErr.Field())] = validationMessage(fieldErr)
	}
	return details
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	default:
		return "invalid value"
	}
}
