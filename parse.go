package schemasynth

import (
	"encoding/json"
	"errors"
	"io"

	eng "github.com/reoring/schemasynth/internal/engine"
)

// ParseJSON decodes JSON text into a generic value (map[string]any, []any,
// string, json.Number, bool or nil). Numbers stay json.Number so that integer
// detection is exact. Failures are reported as Issues carrying the byte offset
// of the problem; the underlying error is kept as the Issue Cause.
func ParseJSON(data []byte, opts ...ParseOpt) (any, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, Issues{{Path: "/", Code: CodeTruncated, Message: "max bytes exceeded", Offset: opt.MaxBytes}}
	}
	src := eng.WrapWithEnforcement(eng.NewBytes(data), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		FailFast:    opt.FailFast,
	})
	v, err := eng.DecodeAnyFromSource(src)
	if err != nil {
		return nil, toIssues(err, data, src.Location())
	}
	return v, nil
}

// ParseJSONString is ParseJSON for string input.
func ParseJSONString(text string, opts ...ParseOpt) (any, error) {
	return ParseJSON([]byte(text), opts...)
}

func toIssues(err error, data []byte, lastOffset int64) Issues {
	size := int64(len(data))
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		it := Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: ie.Offset, Cause: err}
		if ie.Code == CodeLimitExceeded {
			it.Cause = ErrLimitExceeded
		}
		return AppendIssues(nil, it)
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		off, msg := syntaxOffset(data, se)
		return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: msg, Offset: off, Cause: err})
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: "unexpected end of JSON input", Offset: size, Cause: err})
	}
	if errors.Is(err, eng.ErrTrailingData) {
		return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Offset: lastOffset, Cause: err})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Offset: -1, Cause: err})
}

// syntaxOffset rescans data as a whole to obtain the byte offset of the
// offending character; offsets reported while tokenizing are relative to the
// value being read.
func syntaxOffset(data []byte, fallback *json.SyntaxError) (int64, string) {
	var se *json.SyntaxError
	if err := json.Unmarshal(data, new(json.RawMessage)); errors.As(err, &se) {
		if se.Offset > 0 && se.Offset <= int64(len(data)) && se.Error() != "unexpected end of JSON input" {
			return se.Offset - 1, se.Error()
		}
		return se.Offset, se.Error()
	}
	return fallback.Offset, fallback.Error()
}
