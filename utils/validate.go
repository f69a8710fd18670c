package utils

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigit     = regexp.MustCompile(`\D`)
)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone accepts any formatting as long as at least ten digits
// remain.
func ValidPhone(phone string) bool {
	return len(nonDigit.ReplaceAllString(phone, "")) >= 10
}

// SanitizeInput trims whitespace and strips angle brackets from
// free-text fields before they are stored.
func SanitizeInput(input string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(strings.TrimSpace(input))
}
