package password

import (
	"errors"
	"fmt"
	"regexp"
)

// specialChars is the accepted special character set.
var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>/]`)

var (
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// Policy defines the requirements for password complexity.
type Policy struct {
	MinLength          int
	RequireUppercase   bool
	RequireLowercase   bool
	RequireDigit       bool
	RequireSpecialChar bool
}

// DefaultPolicy returns the password policy applied to new registrations.
func DefaultPolicy() *Policy {
	return &Policy{
		MinLength:          8,
		RequireUppercase:   true,
		RequireLowercase:   true,
		RequireDigit:       true,
		RequireSpecialChar: true,
	}
}

// CheckComplexity verifies that a password meets the policy requirements.
func (p *Policy) CheckComplexity(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	if p.RequireUppercase && !upperRe.MatchString(password) {
		return errors.New("password must contain at least one uppercase letter")
	}

	if p.RequireLowercase && !lowerRe.MatchString(password) {
		return errors.New("password must contain at least one lowercase letter")
	}

	if p.RequireDigit && !digitRe.MatchString(password) {
		return errors.New("password must contain at least one digit")
	}

	if p.RequireSpecialChar && !specialChars.MatchString(password) {
		return errors.New("password must contain at least one special character")
	}

	return nil
}
