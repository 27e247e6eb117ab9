package util

import (
	"regexp"

	"github.com/google/uuid"
)

func ValidateEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile("[a-z]").MatchString(password)
	hasUpper := regexp.MustCompile("[A-Z]").MatchString(password)
	hasDigit := regexp.MustCompile("[0-9]").MatchString(password)

	return hasLower && hasUpper && hasDigit
}

// ValidateName accepts the free-text name fields from the signup form.
func ValidateName(name string) bool {
	return len(name) >= 1 && len(name) <= 100
}

// ValidateUUID screens path parameters before they reach a query, so junk ids
// come back as a 400 instead of a database error.
func ValidateUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
