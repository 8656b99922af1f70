package auth

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// MinPasswordLength is the shortest password accepted by forms and the API.
const MinPasswordLength = 6

var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

var (
	lowerRegex  = regexp.MustCompile(`[a-z]`)
	upperRegex  = regexp.MustCompile(`[A-Z]`)
	digitRegex  = regexp.MustCompile(`[0-9]`)
	symbolRegex = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// FormKind selects the rule set applied by ValidateForm.
type FormKind string

const (
	FormLogin  FormKind = "login"
	FormSignup FormKind = "signup"
)

// Form is the raw input of the login/signup screens.
type Form struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// FormValidation is the field-level outcome of ValidateForm.
type FormValidation struct {
	IsValid bool
	Errors  map[string]string
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Email is required"),
		validation.Match(emailRegex).Error("Please enter a valid email address"),
	}
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Password is required"),
		validation.Length(MinPasswordLength, 0).Error("Password must be at least 6 characters long"),
	}
}

// ValidateEmail returns a user-facing message, or "" when email is acceptable.
func ValidateEmail(email string) string {
	return message(validation.Validate(strings.TrimSpace(email), emailRules()...))
}

// ValidatePassword returns a user-facing message, or "" when password is acceptable.
func ValidatePassword(password string) string {
	return message(validation.Validate(password, passwordRules()...))
}

// ValidatePasswordConfirmation checks the signup confirmation field.
func ValidatePasswordConfirmation(password, confirm string) string {
	return message(validation.Validate(confirm,
		validation.Required.Error("Please confirm your password"),
		validation.By(func(value interface{}) error {
			if s, _ := value.(string); s != password {
				return errors.New("Passwords do not match")
			}
			return nil
		}),
	))
}

// ValidateCredentials applies the email and password rules to a credential pair.
// The returned map is keyed by JSON field name and is nil when valid.
func ValidateCredentials(c Credentials) map[string]string {
	trimmed := Credentials{Email: strings.TrimSpace(c.Email), Password: c.Password}
	err := validation.ValidateStruct(&trimmed,
		validation.Field(&trimmed.Email, emailRules()...),
		validation.Field(&trimmed.Password, passwordRules()...),
	)
	return fieldErrors(err)
}

// ValidateForm runs the client-side form checks. Failures never reach a gateway.
func ValidateForm(f Form, kind FormKind) FormValidation {
	errs := ValidateCredentials(Credentials{Email: f.Email, Password: f.Password})
	if kind == FormSignup {
		if msg := ValidatePasswordConfirmation(f.Password, f.ConfirmPassword); msg != "" {
			if errs == nil {
				errs = make(map[string]string, 1)
			}
			errs["confirmPassword"] = msg
		}
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return FormValidation{IsValid: len(errs) == 0, Errors: errs}
}

// Strength scores a password from 0 to 6 with a short label.
type Strength struct {
	Score    int
	Feedback string
}

// PasswordStrength rates password for the signup strength meter.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{}
	}
	if len([]rune(password)) < MinPasswordLength {
		return Strength{Score: 1, Feedback: "Too short - minimum 6 characters"}
	}

	score := 1
	if len([]rune(password)) >= 8 {
		score++
	}
	for _, re := range []*regexp.Regexp{lowerRegex, upperRegex, digitRegex, symbolRegex} {
		if re.MatchString(password) {
			score++
		}
	}

	switch score {
	case 1, 2:
		return Strength{Score: score, Feedback: "Weak password"}
	case 3, 4:
		return Strength{Score: score, Feedback: "Medium strength"}
	default:
		return Strength{Score: score, Feedback: "Strong password"}
	}
}

func message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for field, fe := range verrs {
		if fe != nil {
			out[field] = fe.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
