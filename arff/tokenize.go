package arff

import (
	"strings"
)

// field is one comma-separated item of a data row or a nominal list.
type field struct {
	text   string
	quoted bool
}

// stripComment removes a '%' comment that starts outside quotes.
func stripComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote == 0 && c == '%':
			return s[:i]
		}
	}

	return s
}

// unescape resolves backslash escapes inside a quoted token.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte(s[i])
		}
	}

	return sb.String()
}

// nextToken splits the first whitespace-delimited or quoted token from s.
// It returns the token, the remainder (left-trimmed) and ok=false when the
// quote is unterminated or s is empty.
func nextToken(s string) (tok, rest string, quoted, ok bool) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", "", false, false
	}
	if q := s[0]; q == '\'' || q == '"' {
		for i := 1; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
			case q:
				return unescape(s[1:i]), strings.TrimLeft(s[i+1:], " \t"), true, true
			}
		}

		return "", "", false, false
	}
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, "", false, true
	}

	return s[:end], strings.TrimLeft(s[end:], " \t"), false, true
}

// splitFields splits s on commas outside quotes and trims each field.
// Quoted fields are unescaped and flagged. ok=false signals an unterminated quote.
func splitFields(s string) ([]field, bool) {
	var (
		out   []field
		start = 0
		quote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote == 0 && c == ',':
			out = append(out, makeField(s[start:i]))
			start = i + 1
		}
	}
	if quote != 0 {
		return nil, false
	}
	out = append(out, makeField(s[start:]))

	return out, true
}

// makeField trims raw and strips one level of matching quotes.
func makeField(raw string) field {
	raw = strings.TrimSpace(raw)
	if n := len(raw); n >= 2 && (raw[0] == '\'' || raw[0] == '"') && raw[n-1] == raw[0] {
		return field{text: unescape(raw[1 : n-1]), quoted: true}
	}

	return field{text: raw}
}

// matchBrace returns the index of the '}' closing the '{' at s[0], or -1.
func matchBrace(s string) int {
	var quote byte
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote == 0 && c == '}':
			return i
		}
	}

	return -1
}

// needsQuoting reports whether s must be quoted to survive a round trip.
func needsQuoting(s string) bool {
	if s == "" || s == "?" {
		return true
	}

	return strings.ContainsAny(s, " \t\n\r,'\"%{}\\")
}

// quote renders s as a single-quoted ARFF token when needed.
func quote(s string) string {
	if !needsQuoting(s) {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\t", `\t`, "\r", `\r`)

	return "'" + r.Replace(s) + "'"
}
