package shared

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// NoDocPlaceholder replaces a missing docstring.
const NoDocPlaceholder = "No documentation provided"

// Escape makes s safe to embed between the double quotes of a Go
// interpreted string literal. Backslashes and double quotes are escaped.
// Go literals cannot span lines, so newlines and carriage returns become \n
// and \r; NUL, the byte order mark and invalid UTF-8 bytes, which Go source
// rejects, become hex escapes.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[i])
		case r == '\\':
			b.WriteString(`\\`)
		case r == '"':
			b.WriteString(`\"`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == 0:
			b.WriteString(`\x00`)
		case r == '\ufeff':
			b.WriteString(`\ufeff`)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// EscapeDoc escapes a docstring, substituting the placeholder when it is missing.
func EscapeDoc(doc *string) string {
	if doc == nil {
		return Escape(NoDocPlaceholder)
	}
	return Escape(*doc)
}

// Quote returns s as a Go interpreted string literal.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}
