package vault

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateMasterPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     PasswordStrength
		wantErr  error
	}{
		{"too short", "short", PasswordWeak, ErrPasswordTooShort},
		{"too long", strings.Repeat("a", 129), PasswordWeak, ErrPasswordTooLong},
		{"weak all lower", "aaaaaaaa", PasswordWeak, nil},
		{"fair mixed short", "Password1", PasswordFair, nil},
		{"good mixed 12", "Password1234", PasswordGood, nil},
		{"strong long complex", "Tr0ub4dor&horse!", PasswordStrong, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := ValidateMasterPassword([]byte(tt.password))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateMasterPassword() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("strength = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateMasterPasswordWarnings(t *testing.T) {
	_, warnings, err := ValidateMasterPassword([]byte("aaaaaaaa"))
	if err != nil {
		t.Fatalf("ValidateMasterPassword() error = %v", err)
	}
	if len(warnings) == 0 {
		t.Error("expected complexity warnings for a weak password")
	}
}
