package shared

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToTitle upper-cases the first rune of s.
func ToTitle(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ToSnake turns the dash separated segments of a module path into underscore
// separated ones, e.g. "my-mod" into "my_mod".
func ToSnake(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}
