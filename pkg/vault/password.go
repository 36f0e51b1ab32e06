package vault

import (
	"errors"
	"fmt"
	"unicode"
)

// Master password length limits.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var (
	ErrPasswordTooShort = errors.New("vault: master password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("vault: master password must be at most 128 characters")
)

// PasswordStrength represents the estimated strength of a master password.
type PasswordStrength int

const (
	PasswordWeak PasswordStrength = iota
	PasswordFair
	PasswordGood
	PasswordStrong
)

// String returns a human-readable representation of password strength.
func (s PasswordStrength) String() string {
	switch s {
	case PasswordWeak:
		return "weak"
	case PasswordFair:
		return "fair"
	case PasswordGood:
		return "good"
	case PasswordStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// ValidateMasterPassword enforces the length limits and estimates strength.
// Length violations are errors; weak complexity only produces warnings, the
// user may accept the risk.
func ValidateMasterPassword(password []byte) (PasswordStrength, []string, error) {
	if len(password) < MinPasswordLength {
		return PasswordWeak, nil, fmt.Errorf("%w (got %d)", ErrPasswordTooShort, len(password))
	}
	if len(password) > MaxPasswordLength {
		return PasswordWeak, nil, fmt.Errorf("%w (got %d)", ErrPasswordTooLong, len(password))
	}

	var hasUpper, hasLower, hasDigit, hasOther bool
	for _, r := range string(password) {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasOther = true
		}
	}

	complexity := 0
	for _, has := range []bool{hasUpper, hasLower, hasDigit, hasOther} {
		if has {
			complexity++
		}
	}

	var warnings []string
	if complexity < 2 {
		warnings = append(warnings, "consider mixing uppercase, lowercase, digits and symbols")
	}
	if len(password) < 12 {
		warnings = append(warnings, "longer passwords (12+ characters) are more secure")
	}

	var strength PasswordStrength
	switch {
	case complexity >= 3 && len(password) >= 16:
		strength = PasswordStrong
	case complexity >= 2 && len(password) >= 12:
		strength = PasswordGood
	case complexity >= 2 || len(password) >= 12:
		strength = PasswordFair
	default:
		strength = PasswordWeak
	}

	return strength, warnings, nil
}
