package admin

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("unauthorized")

// SecretChecker validates the shared admin secret. When Hash is set it is a
// bcrypt hash and takes precedence over the plain Password.
type SecretChecker struct {
	Password string
	Hash     string
}

func (s SecretChecker) Configured() bool {
	return s.Password != "" || s.Hash != ""
}

func (s SecretChecker) Check(password string) error {
	if password == "" || !s.Configured() {
		return ErrUnauthorized
	}
	if s.Hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.Hash), []byte(password)); err != nil {
			return ErrUnauthorized
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(s.Password), []byte(password)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
