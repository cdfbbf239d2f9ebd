package service

import (
	"strings"
	"unicode/utf8"
)

// specialCharacters is the fixed set a password must draw at least one
// character from.
const specialCharacters = "@$!%*?&"

// Stable rule messages. Tests and clients match on these strings, so they
// only change deliberately.
const (
	msgPasswordTooShort  = "Password must be at least 8 characters long"
	msgPasswordLowercase = "Password must contain at least one lowercase letter"
	msgPasswordUppercase = "Password must contain at least one uppercase letter"
	msgPasswordNumber    = "Password must contain at least one number"
	msgPasswordSpecial   = "Password must contain at least one special character (@$!%*?&)"
)

// PasswordValidation is the outcome of a strength check. Errors holds one
// message per violated rule, in rule order.
type PasswordValidation struct {
	IsValid bool
	Errors  []string
}

// ValidatePasswordStrength checks password against the five strength
// rules. Every rule is evaluated; violations accumulate rather than
// short-circuit. Pure function, no side effects.
func ValidatePasswordStrength(password string) PasswordValidation {
	var violations []string

	if utf8.RuneCountInString(password) < 8 {
		violations = append(violations, msgPasswordTooShort)
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		violations = append(violations, msgPasswordLowercase)
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		violations = append(violations, msgPasswordUppercase)
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		violations = append(violations, msgPasswordNumber)
	}
	if !strings.ContainsAny(password, specialCharacters) {
		violations = append(violations, msgPasswordSpecial)
	}

	return PasswordValidation{
		IsValid: len(violations) == 0,
		Errors:  violations,
	}
}
