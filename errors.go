package schemasynth

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeInvalidKeyword = "invalid_keyword"
	CodeDuplicateKey   = "duplicate_key"
	CodeParseError     = "parse_error"
	CodeTruncated      = "truncated"
	CodeLimitExceeded  = "limit_exceeded"
	// Schema self-consistency (rule violations surfaced from a validation tree)
	CodeInconsistentConstraint = "inconsistent_constraint"
	// Instance validation (errors reported by the external validator)
	CodeInstanceInvalid = "instance_invalid"
)

// ErrLimitExceeded is wrapped by every error produced when a recursion or
// node budget runs out.
var ErrLimitExceeded = errors.New("schemasynth: resource limit exceeded")

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /properties/a or /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, keyword names, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"min":1, "max":10})
	// for i18n and observability.
	Params map[string]any
	// Rule optionally records the rule tag that produced this issue
	// (for example "minMax" or "redundantMinimum").
	Rule string
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. parse_error at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the causes so errors.Is can see ErrLimitExceeded and
// underlying syntax errors.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// LimitError builds the Issues error returned when a budget is exhausted at path.
func LimitError(path, what string, limit int) error {
	return Issues{{
		Path:    normalizePointer(path),
		Code:    CodeLimitExceeded,
		Message: fmt.Sprintf("%s limit %d exceeded", what, limit),
		Cause:   ErrLimitExceeded,
		Offset:  -1,
		Params:  map[string]any{"limit": limit, "kind": what},
	}}
}
