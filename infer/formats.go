package infer

import (
	"net/mail"
	"regexp"
	"time"

	"github.com/reoring/schemasynth/jsonschema"
)

// stringFormats are tried in order; the first match wins. A format with a
// confirm func additionally requires the value to parse, so that inferred
// formats are ones a Draft-07 validator accepts (e.g. no "2024-13-45", no
// date-time without a UTC offset).
var stringFormats = []struct {
	name    string
	re      *regexp.Regexp
	confirm func(string) bool
}{
	{"date", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), isCalendarDate},
	{"date-time", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?$`), isRFC3339},
	{"email", regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`), isMailAddress},
	{"uuid", regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`), nil},
	{"uri", regexp.MustCompile(`(?i)^(https?|ftp)://[^\s/$.?#].[^\s]*$`), nil},
}

// DetectFormat returns the semantic string format of s, or "" when none of
// the known formats match.
func DetectFormat(s string) string {
	for _, f := range stringFormats {
		if f.re.MatchString(s) && (f.confirm == nil || f.confirm(s)) {
			return f.name
		}
	}
	return ""
}

func stringSchema(s string) *jsonschema.Object {
	out := jsonschema.Typed(jsonschema.TypeString)
	out.Format = DetectFormat(s)
	return out
}

func isCalendarDate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// isRFC3339 accepts RFC 3339 timestamps with optional fractional seconds.
// The offset is mandatory.
func isRFC3339(s string) bool {
	if _, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func isMailAddress(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}
