package utils

import (
	"net/mail"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	accountPasswordRe = regexp.MustCompile(`^\d{6}$`)
	phoneRe           = regexp.MustCompile(`^1[3-9]\d{9}$`)

	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[\W_]`)
)

// HashPassword hashes a plain password using bcrypt with cost 14.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsEmail returns true if the string is a valid email address.
func IsEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// IsAccountPassword reports whether the string is exactly six digits, the
// required shape for account payment passwords.
func IsAccountPassword(password string) bool {
	return accountPasswordRe.MatchString(password)
}

// IsAccountName reports whether the name is 3 to 20 characters long.
func IsAccountName(name string) bool {
	length := utf8.RuneCountInString(name)
	return length >= 3 && length <= 20
}

// IsPhone reports whether the string is a valid mobile number.
func IsPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// IsStrongPassword reports whether the password contains lower and upper
// case letters, a digit and a special character. Length bounds are enforced
// by the request DTOs.
func IsStrongPassword(password string) bool {
	return lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}
