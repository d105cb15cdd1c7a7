package utils

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// phoneRegex matches an E.164-like number: optional leading +, first digit
// 1-9, 2 to 15 digits total.
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// IsValidPhoneNumber reports whether phone looks like an E.164 number.
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// ValidateStruct runs validator tags over a request DTO and folds the first
// failure into a human-readable message.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", fe.Field())
		case "email":
			return fmt.Errorf("%s must be a valid email address", fe.Field())
		case "min":
			return fmt.Errorf("%s must be at least %s characters long", fe.Field(), fe.Param())
		case "max":
			return fmt.Errorf("%s cannot exceed %s characters", fe.Field(), fe.Param())
		case "len":
			return fmt.Errorf("%s must be exactly %s characters long", fe.Field(), fe.Param())
		default:
			return fmt.Errorf("validation failed on field %q for tag %q", fe.Field(), fe.Tag())
		}
	}
	return err
}
