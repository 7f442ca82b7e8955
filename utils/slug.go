package utils

import "regexp"

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidSlug reports whether s is a non-empty URL-safe identifier:
// latin letters, digits, hyphen and underscore.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
