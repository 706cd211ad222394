package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 8
	ResetCodeLength   = 6
)

var std = NewValidator()

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("name", validateName)
	v.RegisterValidation("password_strength", validatePasswordStrength)
	v.RegisterValidation("reset_code", validateResetCode)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// IsValidName reports whether s is non-empty after trimming.
func IsValidName(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidEmail reports whether s has a conventional email shape.
func IsValidEmail(s string) bool {
	return std.Var(s, "required,email") == nil
}

// IsValidPassword requires at least MinPasswordLength characters with one
// digit, one uppercase and one lowercase letter.
func IsValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLength {
		return false
	}
	var digit, upper, lower bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return digit && upper && lower
}

// PasswordsMatch is an exact, case-sensitive comparison.
func PasswordsMatch(password, confirm string) bool {
	return password == confirm
}

// IsValidResetCode checks shape only: ResetCodeLength ASCII digits.
func IsValidResetCode(s string) bool {
	if len(s) != ResetCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func validateName(fl validator.FieldLevel) bool {
	return IsValidName(fl.Field().String())
}

func validatePasswordStrength(fl validator.FieldLevel) bool {
	return IsValidPassword(fl.Field().String())
}

func validateResetCode(fl validator.FieldLevel) bool {
	return IsValidResetCode(fl.Field().String())
}
