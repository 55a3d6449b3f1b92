package helpers

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

var ErrWeakPassword = errors.New("password minimal 8 karakter dan wajib mengandung huruf dan angka")

func isAlphaNumeric(s string) bool {
	return hasLetter.MatchString(s) && hasNumber.MatchString(s)
}

func ValidatePassword(pw string) error {
	if len(pw) < 8 || !isAlphaNumeric(pw) {
		return ErrWeakPassword
	}
	return nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPasswordHash(hash, pw string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
}
