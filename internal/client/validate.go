package client

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf16"
)

const (
	MinPasswordLength = 6

	MessageInvalidEmail    = "Please enter a valid email address."
	MessageInvalidPassword = "Password must be at least 6 characters."
)

// Loose text@text.text shape; the server does no format checks at all.
// RE2's \S only excludes ASCII whitespace, so the class also drops vertical
// tab, Unicode separators and the BOM to match browser regexp semantics.
var emailPattern = regexp.MustCompile(`[^\s\v\p{Z}\x{FEFF}]+@[^\s\v\p{Z}\x{FEFF}]+\.[^\s\v\p{Z}\x{FEFF}]+`)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("login form is invalid")

// ValidationError carries the per-field messages shown next to the form
// inputs. An empty field message means that field passed.
type ValidationError struct {
	Email    string
	Password string
}

func (e *ValidationError) Error() string {
	var msgs []string
	if e.Email != "" {
		msgs = append(msgs, e.Email)
	}
	if e.Password != "" {
		msgs = append(msgs, e.Password)
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidateEmail returns the form message for an unusable email, or "".
// The landing page's "Get Started" box uses the same check.
func ValidateEmail(email string) string {
	if email == "" || !emailPattern.MatchString(email) {
		return MessageInvalidEmail
	}
	return ""
}

// ValidatePassword returns the form message for a too-short password, or "".
// Length is counted in UTF-16 code units, as browsers count string length.
func ValidatePassword(password string) string {
	if len(utf16.Encode([]rune(password))) < MinPasswordLength {
		return MessageInvalidPassword
	}
	return ""
}

// ValidateForm checks both fields and reports every failure at once.
func ValidateForm(email, password string) error {
	verr := &ValidationError{
		Email:    ValidateEmail(email),
		Password: ValidatePassword(password),
	}
	if verr.Email == "" && verr.Password == "" {
		return nil
	}
	return verr
}
