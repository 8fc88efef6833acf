// Package locate maps JSON Pointers and parse errors back to line and
// column positions in raw JSON text.
//
// Pointers are resolved against a token index built by tokenizing the text
// once, which is exact even when key names repeat. When the text cannot be
// tokenized a textual search for the last pointer segment is used instead.
// Nothing in this package fails: a position that cannot be recovered is
// simply absent.
package locate

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	schemasynth "github.com/reoring/schemasynth"
	"github.com/reoring/schemasynth/i18n"
)

// RawError is one error reported by an instance validator.
type RawError struct {
	InstancePath string `json:"instancePath"`
	Message      string `json:"message"`
}

// PositionedError is an error paired with its best-effort position. Line
// and Column are 0 when unknown.
type PositionedError struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// Position returns the recovered position, if any.
func (e PositionedError) Position() (Position, bool) {
	return Position{Line: e.Line, Column: e.Column}, e.Line > 0
}

// Describe renders the location as "Line L, Col C" or "Line L"; it returns
// "" when the position is unknown. A nil tr uses the current translator.
func (e PositionedError) Describe(tr i18n.Translator) string {
	tr = i18n.Or(tr)
	switch {
	case e.Line > 0 && e.Column > 0:
		return tr.Message(i18n.KeyLocationLineAndColumn, map[string]string{
			"line": strconv.Itoa(e.Line), "column": strconv.Itoa(e.Column),
		})
	case e.Line > 0:
		return tr.Message(i18n.KeyLocationLineOnly, map[string]string{"line": strconv.Itoa(e.Line)})
	}
	return ""
}

// Resolve returns the position of pointer in the indexed text. The root
// ("" or "/") is always Start. Otherwise the exact token position is used;
// if the pointer is not in the index the nearest indexed non-root ancestor
// is used, and for text that did not tokenize completely the last pointer
// segment is searched textually first.
func (ix *Index) Resolve(pointer string) (Position, bool) {
	if pointer == "" || pointer == "/" {
		return Start, true
	}
	if off, ok := ix.Offset(pointer); ok {
		return ix.PositionOf(off), true
	}
	if !ix.complete {
		if pos, ok := textual(ix.text, pointer); ok {
			return pos, true
		}
	}
	for p := parent(pointer); p != ""; p = parent(p) {
		if off, ok := ix.Offset(p); ok {
			return ix.PositionOf(off), true
		}
	}
	return Position{}, false
}

// FindLineNumberForPath resolves pointer against text.
func FindLineNumberForPath(text, pointer string) (Position, bool) {
	if pointer == "" || pointer == "/" {
		return Start, true
	}
	return NewIndex(text).Resolve(pointer)
}

// Locate positions every raw validator error against text. The text is
// tokenized once for all errors.
func Locate(text string, errs []RawError) []PositionedError {
	if len(errs) == 0 {
		return nil
	}
	ix := NewIndex(text)
	out := make([]PositionedError, 0, len(errs))
	for _, e := range errs {
		path := e.InstancePath
		if path == "" {
			path = "/"
		}
		pe := PositionedError{Path: path, Message: e.Message}
		if pos, ok := ix.Resolve(path); ok {
			pe.Line, pe.Column = pos.Line, pos.Column
		}
		out = append(out, pe)
	}
	return out
}

var (
	lineColumnRe = regexp.MustCompile(`at line (\d+),? column (\d+)`)
	positionRe   = regexp.MustCompile(`position (\d+)`)
	offsetRe     = regexp.MustCompile(`offset (\d+)`)
)

// FromParseError derives the position of a JSON parse failure. It uses, in
// order: the byte offset carried by schemasynth Issues or a *json.SyntaxError,
// an "at line L column C" phrase, a "position N" or "offset N" phrase in the
// message. Anything else yields Start.
func FromParseError(err error, text string) Position {
	if err == nil {
		return Start
	}
	ix := &Index{text: text, lines: lineStarts(text)}
	if iss, ok := schemasynth.AsIssues(err); ok {
		for _, it := range iss {
			if it.Offset >= 0 {
				return ix.PositionOf(it.Offset)
			}
		}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return ix.PositionOf(se.Offset)
	}
	msg := err.Error()
	if m := lineColumnRe.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		if line > 0 && col > 0 {
			return Position{Line: line, Column: col}
		}
	}
	for _, re := range []*regexp.Regexp{positionRe, offsetRe} {
		if m := re.FindStringSubmatch(msg); m != nil {
			n, _ := strconv.ParseInt(m[1], 10, 64)
			return ix.PositionOf(n)
		}
	}
	return Start
}

// ParseFailure converts a parse error of the instance text into the single
// root error shown in place of validation results.
func ParseFailure(err error, text string, tr i18n.Translator) PositionedError {
	tr = i18n.Or(tr)
	pos := FromParseError(err, text)
	msg := tr.Message(i18n.KeyInvalidSyntax, nil)
	if detail := parseDetail(err); detail != "" {
		msg += ": " + detail
	}
	return PositionedError{Path: "/", Message: msg, Line: pos.Line, Column: pos.Column}
}

func parseDetail(err error) string {
	if err == nil {
		return ""
	}
	if iss, ok := schemasynth.AsIssues(err); ok && len(iss) > 0 {
		return iss[0].Message
	}
	return err.Error()
}

// textual finds the first quoted key equal to the last pointer segment. It
// cannot tell apart equal keys in different objects.
func textual(text, pointer string) (Position, bool) {
	segs := schemasynth.SplitPointer(pointer)
	if len(segs) == 0 {
		return Start, true
	}
	quoted, err := json.Marshal(segs[len(segs)-1])
	if err != nil {
		return Position{}, false
	}
	needle := string(quoted)
	for i, line := range strings.Split(text, "\n") {
		idx := strings.Index(line, needle)
		for idx >= 0 {
			rest := strings.TrimLeft(line[idx+len(needle):], " \t\r")
			if strings.HasPrefix(rest, ":") || rest == "" {
				return Position{Line: i + 1, Column: utf8.RuneCountInString(line[:idx]) + 1}, true
			}
			next := strings.Index(line[idx+1:], needle)
			if next < 0 {
				break
			}
			idx += 1 + next
		}
	}
	return Position{}, false
}

func parent(pointer string) string {
	i := strings.LastIndexByte(pointer, '/')
	if i <= 0 {
		return ""
	}
	return pointer[:i]
}
