package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signupFields struct {
	Email    string `validate:"required,loose_email"`
	Password string `validate:"required,strong_password"`
	Contact  string `validate:"contact_number"`
}

func TestLooseEmail(t *testing.T) {
	cv := NewValidator()

	valid := []string{"a@x.com", "someone@clinic.example.org", "weird@."}
	for _, email := range valid {
		err := cv.Validate(&signupFields{Email: email, Password: "Secret1!"})
		assert.NoError(t, err, email)
	}

	invalid := []string{"no-at-sign.com", "no-dot@com", "plain"}
	for _, email := range invalid {
		err := cv.Validate(&signupFields{Email: email, Password: "Secret1!"})
		assert.Error(t, err, email)
	}
}

func TestStrongPassword(t *testing.T) {
	cv := NewValidator()

	tests := []struct {
		password string
		ok       bool
	}{
		{"Secret1!", true},
		{"P4ss[word]", true},
		{"Aa1\\", true},
		{"secret1!", false}, // no uppercase
		{"Secretone!", false}, // no digit
		{"Secret123", false}, // no symbol
		{"", false},
	}

	for _, tc := range tests {
		err := cv.Validate(&signupFields{Email: "a@x.com", Password: tc.password})
		if tc.ok {
			assert.NoError(t, err, tc.password)
		} else {
			assert.Error(t, err, tc.password)
		}
	}
}

func TestContactNumber(t *testing.T) {
	cv := NewValidator()

	tests := []struct {
		contact string
		ok      bool
	}{
		{"", true},
		{"09171234567", true},
		{"123", true},
		{"123456789012", false}, // 12 digits
		{"0917-123", false},
		{"phone", false},
	}

	for _, tc := range tests {
		err := cv.Validate(&signupFields{Email: "a@x.com", Password: "Secret1!", Contact: tc.contact})
		if tc.ok {
			assert.NoError(t, err, tc.contact)
		} else {
			assert.Error(t, err, tc.contact)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&signupFields{Email: "bad", Password: "weak"})
	assert.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Contains(t, formatted, "Email")
	assert.Contains(t, formatted, "Password")
}
