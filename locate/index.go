package locate

import (
	"errors"
	"io"
	"sort"
	"unicode/utf8"

	eng "github.com/reoring/schemasynth/internal/engine"
)

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Start is the position of the first character of a document.
var Start = Position{Line: 1, Column: 1}

// Index maps JSON Pointers of one JSON text to byte offsets. It is built by
// tokenizing the text once; duplicate keys resolve to their last
// occurrence, matching the value a decoder keeps.
type Index struct {
	text     string
	lines    []int
	keys     map[string]int64
	values   map[string]int64
	complete bool
}

// NewIndex tokenizes text. Text that is not valid JSON yields a partial
// index covering the tokens before the first syntax error; Complete reports
// false in that case. A second top-level value ends the index the same way.
func NewIndex(text string) *Index {
	ix := &Index{
		text:   text,
		lines:  lineStarts(text),
		keys:   make(map[string]int64),
		values: make(map[string]int64),
	}
	src := eng.WrapWithEnforcement(eng.NewBytes([]byte(text)), eng.EnforceOptions{})
	roots := 0
	for {
		tok, err := src.NextToken()
		if err != nil {
			ix.complete = errors.Is(err, io.EOF) && src.Depth() == 0 && roots == 1
			return ix
		}
		switch {
		case tok.Kind == eng.KindKey:
			ix.keys[src.Path()] = tok.Offset
		case tok.IsValueStart():
			if src.Path() == "" {
				roots++
				if roots > 1 {
					return ix
				}
			}
			ix.values[src.Path()] = tok.Offset
		}
	}
}

// Complete reports whether the whole text tokenized without error.
func (ix *Index) Complete() bool { return ix.complete }

// Offset returns the byte offset for pointer: the member key's opening quote
// for object members, the value start otherwise.
func (ix *Index) Offset(pointer string) (int64, bool) {
	p := normalize(pointer)
	if off, ok := ix.keys[p]; ok {
		return off, true
	}
	off, ok := ix.values[p]
	return off, ok
}

// PositionOf converts a byte offset into a Position. Offsets past the end
// clamp to the end of the text.
func (ix *Index) PositionOf(offset int64) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(ix.text)) {
		offset = int64(len(ix.text))
	}
	off := int(offset)
	i := sort.Search(len(ix.lines), func(i int) bool { return ix.lines[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	return Position{Line: i + 1, Column: utf8.RuneCountInString(ix.text[ix.lines[i]:off]) + 1}
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// normalize maps the root pointer "/" to "" as recorded by the tokenizer.
func normalize(pointer string) string {
	if pointer == "/" {
		return ""
	}
	return pointer
}
