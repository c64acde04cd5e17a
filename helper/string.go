package helper

import (
	"strings"
	"unicode"
)

// Underscore converts a StructField name like "DisplayTitle" to its
// snake_case JSON key "display_title".
func Underscore(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
