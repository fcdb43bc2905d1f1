package validator

import (
	"regexp"
	"strings"
)

// nameRegexp defines the valid format for table and environment names:
// lowercase letters, numbers and underscores, 1-64 characters.
var nameRegexp = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// ValidateName checks if the given table or environment name is well formed.
func ValidateName(name string) bool {
	return nameRegexp.MatchString(strings.TrimSpace(name))
}

// SanitizeName trims whitespace, lowercases and validates the name.
// Returns the sanitized name and a boolean indicating if it's valid.
func SanitizeName(name string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return "", false
	}
	return trimmed, nameRegexp.MatchString(trimmed)
}
