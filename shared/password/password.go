package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Staff password bounds. bcrypt ignores anything past MaxBytes, so longer input is refused
// instead of silently truncated.
const (
	MinLength = 8
	MaxBytes  = 72
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmptyPassword   = errors.New("password cannot be blank")
	ErrTooShort        = fmt.Errorf("password must be at least %d characters", MinLength)
	ErrTooLong         = fmt.Errorf("password must be at most %d bytes", MaxBytes)
)

// Check applies the staff password policy without hashing.
func Check(plain string) error {
	switch {
	case strings.TrimSpace(plain) == "":
		return ErrEmptyPassword
	case utf8.RuneCountInString(plain) < MinLength:
		return ErrTooShort
	case len(plain) > MaxBytes:
		return ErrTooLong
	}

	return nil
}

func Hash(plain string) (string, error) {
	return HashWithCost(plain, bcrypt.DefaultCost)
}

// HashWithCost is Hash with an explicit bcrypt cost; tests use bcrypt.MinCost.
func HashWithCost(plain string, cost int) (string, error) {
	if err := Check(plain); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash staff password: %w", err)
	}

	return string(hashed), nil
}

// Verify returns ErrInvalidPassword on any mismatch, including a missing stored hash.
func Verify(plain, hashed string) error {
	if plain == "" || hashed == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("compare staff password: %w", err)
	}
}
