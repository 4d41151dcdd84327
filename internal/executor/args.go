package executor

import (
	"strings"
	"unicode"
)

// SplitArgs tokenizes an argument string into an argv slice. Double
// quotes group tokens containing spaces (file paths); no shell expansion
// of any kind is performed.
func SplitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inQuote := false
	pending := false

	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			pending = true
		case unicode.IsSpace(r) && !inQuote:
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, cur.String())
	}
	return args
}
