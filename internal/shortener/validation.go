package shortener

import (
	"regexp"
)

// MinLength is the minimum length of a requested shortcode
const MinLength = 4

var shortcodePattern = regexp.MustCompile(`^[0-9a-zA-Z_]{4,}$`)

// IsValidShortcode reports whether code satisfies the shortcode grammar.
// There is no upper bound on length.
func IsValidShortcode(code string) bool {
	return shortcodePattern.MatchString(code)
}

func isShortcodeChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
