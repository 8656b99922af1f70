package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "valid", input: "a@b.com", want: ""},
		{name: "valid with dots", input: "first.last@mail.example.org", want: ""},
		{name: "padded", input: "  a@b.com  ", want: ""},
		{name: "empty", input: "", want: "Email is required"},
		{name: "whitespace", input: "   ", want: "Email is required"},
		{name: "missing at", input: "ab.com", want: "Please enter a valid email address"},
		{name: "missing tld", input: "a@b", want: "Please enter a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.input))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Equal(t, "Password is required", ValidatePassword(""))
	assert.Equal(t, "Password must be at least 6 characters long", ValidatePassword("12345"))
	assert.Empty(t, ValidatePassword("secret1"))
}

func TestValidatePasswordConfirmation(t *testing.T) {
	assert.Equal(t, "Please confirm your password", ValidatePasswordConfirmation("secret1", ""))
	assert.Equal(t, "Passwords do not match", ValidatePasswordConfirmation("secret1", "secret2"))
	assert.Empty(t, ValidatePasswordConfirmation("secret1", "secret1"))
}

func TestValidateForm_Login(t *testing.T) {
	res := ValidateForm(Form{Email: "a@b.com", Password: "secret1"}, FormLogin)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)

	res = ValidateForm(Form{Email: "bad", Password: "1"}, FormLogin)
	assert.False(t, res.IsValid)
	assert.Equal(t, map[string]string{
		"email":    "Please enter a valid email address",
		"password": "Password must be at least 6 characters long",
	}, res.Errors)
}

func TestValidateForm_SignupChecksConfirmation(t *testing.T) {
	res := ValidateForm(Form{Email: "a@b.com", Password: "secret1"}, FormSignup)
	assert.False(t, res.IsValid)
	assert.Equal(t, "Please confirm your password", res.Errors["confirmPassword"])

	res = ValidateForm(Form{Email: "a@b.com", Password: "secret1", ConfirmPassword: "secret1"}, FormSignup)
	assert.True(t, res.IsValid)
}

func TestValidateCredentials(t *testing.T) {
	assert.Nil(t, ValidateCredentials(Credentials{Email: "a@b.com", Password: "secret1"}))
	assert.Equal(t,
		map[string]string{"email": "Email is required", "password": "Password is required"},
		ValidateCredentials(Credentials{}),
	)
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     Strength
	}{
		{"", Strength{}},
		{"abc", Strength{Score: 1, Feedback: "Too short - minimum 6 characters"}},
		{"abcdef", Strength{Score: 2, Feedback: "Weak password"}},
		{"abcdefgh", Strength{Score: 3, Feedback: "Medium strength"}},
		{"Abcdefg1", Strength{Score: 5, Feedback: "Strong password"}},
		{"Abcdef1", Strength{Score: 4, Feedback: "Medium strength"}},
		{"Abcdef1!", Strength{Score: 6, Feedback: "Strong password"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PasswordStrength(tt.password), tt.password)
	}
}
