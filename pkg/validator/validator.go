package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// passwordSymbols is the punctuation set a strong password must draw from.
const passwordSymbols = "!@#$%^&*()-_=+[]{};:,<.>/?\\"

const maxContactDigits = 11

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Domain rules shared by account signup and doctor creation.
	v.RegisterValidation("loose_email", validateLooseEmail)
	v.RegisterValidation("strong_password", validateStrongPassword)
	v.RegisterValidation("contact_number", validateContactNumber)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// validateLooseEmail keeps the historical contract: an email is valid
// when it contains both "@" and ".".
func validateLooseEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// validateStrongPassword requires at least one uppercase letter, one
// digit and one symbol from the defined punctuation set.
func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	var hasUpper, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, c):
			hasSymbol = true
		}
	}
	return hasUpper && hasDigit && hasSymbol
}

// validateContactNumber accepts digits only up to 11 characters.
// Empty is allowed transitionally.
func validateContactNumber(fl validator.FieldLevel) bool {
	contact := fl.Field().String()
	if contact == "" {
		return true
	}
	if len(contact) > maxContactDigits {
		return false
	}
	for _, c := range contact {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "loose_email":
				errors[field] = field + " must be a valid email address"
			case "strong_password":
				errors[field] = field + " must include at least one uppercase letter, one number, and one special character"
			case "contact_number":
				errors[field] = field + " must contain digits only, up to 11 characters"
			case "min":
				errors[field] = field + " must have at least " + e.Param() + " items or characters"
			case "max":
				errors[field] = field + " must have at most " + e.Param() + " items or characters"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
