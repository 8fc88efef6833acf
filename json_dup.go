package schemasynth

import (
	eng "github.com/reoring/schemasynth/internal/engine"
)

// DetectJSONDuplicateKeysBytes reports duplicate object keys in a JSON byte
// slice. maxIssues < 0 means unlimited; 0 disables reporting; > 0 caps the
// result and appends a truncated marker. Syntax errors end the scan and are
// returned as the error.
func DetectJSONDuplicateKeysBytes(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	mode := toEngineDup(strict.OnDuplicateKey)
	if mode == eng.DupIgnore || maxIssues == 0 {
		return nil, nil
	}
	var iss Issues
	full := false
	sink := func(si eng.SimpleIssue) {
		if full {
			return
		}
		iss = AppendIssues(iss, Issue{Code: si.Code, Path: si.Path, Message: si.Message, Offset: si.Offset})
		if maxIssues > 0 && len(iss) >= maxIssues {
			iss = AppendIssues(iss, Issue{Code: CodeTruncated, Path: "/", Message: "max issues reached", Offset: -1})
			full = true
		}
	}
	src := eng.WrapWithEnforcement(eng.NewBytes(data), eng.EnforceOptions{
		OnDuplicate: eng.DupWarn,
		IssueSink:   sink,
	})
	if err := eng.Drain(src); err != nil {
		return iss, toIssues(err, data, src.Location())
	}
	if mode == eng.DupError && len(iss) > 0 {
		return iss, iss
	}
	return iss, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}
