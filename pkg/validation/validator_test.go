package validation

import (
	"strings"
	"testing"

	"github.com/sefazor/ourphotos-accounts/pkg/account"
	"github.com/stretchr/testify/assert"
)

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"mixed with digit and symbol", "Abcdef1!", true},
		{"exactly eight", "Passw0rd", true},
		{"all lowercase", "abcdefgh", false},
		{"no digit", "Abcdefgh", false},
		{"no uppercase", "abcdef12", false},
		{"no lowercase", "ABCDEF12", false},
		{"too short", "Ab1", false},
		{"seven chars", "Abcde1x", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

func TestIsValidPassword_ShortStringsAlwaysFail(t *testing.T) {
	base := "Aa1Bb2Cc3"
	for n := 0; n < MinPasswordLength; n++ {
		assert.False(t, IsValidPassword(base[:n]), "length %d", n)
	}
}

func TestIsValidPassword_LettersOnlyAlwaysFail(t *testing.T) {
	for _, s := range []string{"Abcdefgh", "ABCDEFGHijkl", strings.Repeat("Zz", 20)} {
		assert.False(t, IsValidPassword(s), s)
	}
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("Passw0rd", "Passw0rd"))
	assert.True(t, PasswordsMatch("", ""))
	assert.False(t, PasswordsMatch("Passw0rd", "passw0rd"))
	assert.False(t, PasswordsMatch("Passw0rd", "Passw0rd "))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Ada"))
	assert.True(t, IsValidName("  Ada Lovelace "))
	assert.False(t, IsValidName(""))
	assert.False(t, IsValidName("   \t"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("a@b.com"))
	assert.True(t, IsValidEmail("first.last+tag@example.co.uk"))
	assert.False(t, IsValidEmail(""))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("a@"))
}

func TestIsValidResetCode(t *testing.T) {
	assert.True(t, IsValidResetCode("123456"))
	assert.False(t, IsValidResetCode("12345"))
	assert.False(t, IsValidResetCode("1234567"))
	assert.False(t, IsValidResetCode("12a456"))
	assert.False(t, IsValidResetCode(""))
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(account.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "Passw0rd"}))
	assert.Error(t, v.Struct(account.SignupRequest{Name: " ", Email: "ada@example.com", Password: "Passw0rd"}))
	assert.Error(t, v.Struct(account.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "short"}))

	assert.NoError(t, v.Struct(account.ResetPasswordRequest{Email: "a@b.com", Code: "123456", Password: "Passw0rd"}))
	assert.Error(t, v.Struct(account.ResetPasswordRequest{Email: "a@b.com", Code: "12x456", Password: "Passw0rd"}))
	assert.Error(t, v.Struct(account.CheckResetCodeRequest{Code: ""}))
}
