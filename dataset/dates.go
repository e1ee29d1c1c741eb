package dataset

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDateFormat is the pattern assumed for date attributes declared
// without an explicit format.
const DefaultDateFormat = "yyyy-MM-dd'T'HH:mm:ss"

// javaTokens maps Java SimpleDateFormat letters to Go layout fragments,
// longest tokens first so "yyyy" wins over "yy" and "MM" over "M".
var javaTokens = []struct{ java, layout string }{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"SSS", "000"},
	{"EEE", "Mon"},
	{"a", "PM"},
	{"Z", "-0700"},
	{"z", "MST"},
	{"M", "1"},
	{"d", "2"},
	{"H", "15"},
	{"h", "3"},
	{"m", "4"},
	{"s", "5"},
}

// GoLayout converts a Java-style date pattern into a time.Parse layout.
// Text inside single quotes is copied literally ('' is a literal quote).
func GoLayout(pattern string) string {
	if pattern == "" {
		pattern = DefaultDateFormat
	}
	var sb strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '\'' {
			j := i + 1
			if j < len(pattern) && pattern[j] == '\'' {
				sb.WriteByte('\'')
				i += 2
				continue
			}
			for j < len(pattern) {
				if pattern[j] == '\'' {
					if j+1 < len(pattern) && pattern[j+1] == '\'' {
						sb.WriteByte('\'')
						j += 2
						continue
					}
					break
				}
				sb.WriteByte(pattern[j])
				j++
			}
			i = j + 1
			continue
		}
		matched := false
		for _, tok := range javaTokens {
			if strings.HasPrefix(pattern[i:], tok.java) {
				sb.WriteString(tok.layout)
				i += len(tok.java)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(pattern[i])
			i++
		}
	}

	return sb.String()
}

// ParseDate parses s with the Java-style pattern and returns Unix milliseconds (UTC).
func ParseDate(s, pattern string) (float64, error) {
	t, err := time.ParseInLocation(GoLayout(pattern), s, time.UTC)
	if err != nil {
		return 0, err
	}

	return float64(t.UnixMilli()), nil
}

func formatDate(v float64, pattern string) string {
	return time.UnixMilli(int64(v)).UTC().Format(GoLayout(pattern))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
