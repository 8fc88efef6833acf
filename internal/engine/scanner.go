package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type scanFrame struct {
	kind         containerKind
	expectingKey bool
}

// scanner is a TokenSource over an in-memory JSON document. It relies on
// encoding/json's Decoder.InputOffset to recover exact token start offsets.
type scanner struct {
	data       []byte
	dec        *json.Decoder
	stack      []scanFrame
	lastOffset int64
}

// NewBytes wraps a byte slice into a TokenSource with exact token offsets.
func NewBytes(b []byte) TokenSource {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &scanner{data: b, dec: dec, lastOffset: -1}
}

func (s *scanner) NextToken() (Token, error) {
	before := s.dec.InputOffset()
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	end := s.dec.InputOffset()
	start := s.tokenStart(before, end)
	s.lastOffset = end

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, scanFrame{kind: kindObject, expectingKey: true})
			return Token{Kind: KindBeginObject, Offset: start, End: end}, nil
		case '}':
			s.pop()
			return Token{Kind: KindEndObject, Offset: start, End: end}, nil
		case '[':
			s.stack = append(s.stack, scanFrame{kind: kindArray})
			return Token{Kind: KindBeginArray, Offset: start, End: end}, nil
		case ']':
			s.pop()
			return Token{Kind: KindEndArray, Offset: start, End: end}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return Token{Kind: KindKey, String: v, Offset: start, End: end}, nil
			}
		}
		s.valueDone()
		return Token{Kind: KindString, String: v, Offset: start, End: end}, nil
	case bool:
		s.valueDone()
		return Token{Kind: KindBool, Bool: v, Offset: start, End: end}, nil
	case json.Number:
		s.valueDone()
		return Token{Kind: KindNumber, Number: string(v), Offset: start, End: end}, nil
	case float64:
		s.valueDone()
		return Token{Kind: KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: start, End: end}, nil
	}
	s.valueDone()
	return Token{Kind: KindNull, Offset: start, End: end}, nil
}

func (s *scanner) Location() int64 { return s.lastOffset }

// tokenStart skips whitespace and the separators the decoder consumed
// implicitly (',' and ':') between the previous token and this one.
func (s *scanner) tokenStart(before, end int64) int64 {
	i := before
	for i < end && i < int64(len(s.data)) {
		switch s.data[i] {
		case ' ', '\t', '\r', '\n', ',', ':':
			i++
			continue
		}
		break
	}
	return i
}

func (s *scanner) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

// valueDone flips the enclosing object back to expecting a key once a member
// value has been fully read.
func (s *scanner) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
