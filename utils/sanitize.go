package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize cleans user generated HTML (post text, comment text) to
// prevent XSS while keeping the usual formatting tags.
func Sanitize(input string) string {
	return ugcPolicy.Sanitize(input)
}

// StripTags removes all markup, used for plain-text fields like titles
// and location names.
func StripTags(input string) string {
	return strictPolicy.Sanitize(input)
}
