package schemasynth

import (
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string) Issue
}

// Root returns the PathRef of the document root.
func Root() PathRef { return &pathRef{parts: nil} }

// At returns a PathRef positioned at an existing JSON Pointer.
func At(pointer string) PathRef { return &pathRef{parts: escapeAll(SplitPointer(pointer))} }

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), EscapePointerToken(name))}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Offset: -1}
}

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapePointerToken escapes '~' and '/' per RFC 6901.
func EscapePointerToken(s string) string { return pointerEscaper.Replace(s) }

// SplitPointer splits a JSON Pointer into unescaped reference tokens. Both ""
// and "/" denote the root and yield no tokens.
func SplitPointer(pointer string) []string {
	if pointer == "" || pointer == "/" {
		return nil
	}
	raw := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = pointerUnescaper.Replace(r)
	}
	return out
}

// JoinPointer appends one unescaped token to a pointer ("" is the root).
func JoinPointer(base, token string) string {
	if base == "" || base == "/" {
		return "/" + EscapePointerToken(token)
	}
	return base + "/" + EscapePointerToken(token)
}

func escapeAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = EscapePointerToken(t)
	}
	return out
}

func normalizePointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
