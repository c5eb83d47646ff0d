package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Abraxas-365/shiftboard/pkg/errx"
)

const MinPasswordLength = 8

// HashPassword bcrypt-hashes a plain password
func HashPassword(plain string) (string, error) {
	if len(plain) < MinPasswordLength {
		return "", ErrWeakPassword().WithDetail("min_length", MinPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hash), nil
}

// CheckPassword compares a plain password with its hash
func CheckPassword(hash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials()
	}
	return errx.Wrap(err, "failed to verify password", errx.TypeInternal)
}
