package utils

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePassword rejects passwords that are too short, entirely numeric,
// or equal to the username.
func ValidatePassword(password, username string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}

	allDigits := true
	for _, char := range password {
		if !unicode.IsDigit(char) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return errors.New("password cannot be entirely numeric")
	}

	if username != "" && strings.EqualFold(password, username) {
		return errors.New("password is too similar to the username")
	}

	return nil
}
