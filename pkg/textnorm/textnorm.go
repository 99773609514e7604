// Package textnorm hides comments and string literals from lexical reference matching.
//
// Normalize runs a single-pass scanner over file content. Comment text is
// overwritten with spaces (newlines survive, so offsets and line numbers
// stay aligned with the original) and every string literal span is
// recorded, letting callers ask whether a match started inside a literal.
package textnorm

import (
	"sort"
	"strings"
)

// DefaultEscape is the escape byte used when a Syntax leaves Escape unset.
const DefaultEscape = '\\'

const tripleLen = 3

// BlockComment is an opening and closing comment delimiter pair.
type BlockComment struct {
	Open  string
	Close string
	// LineStart restricts Open to the first column of a line (Ruby =begin).
	LineStart bool
}

// Syntax describes the comment and string conventions of a language family.
type Syntax struct {
	LineComments  []string
	BlockComments []BlockComment
	// NestedBlocks lets block comments nest (Rust, Swift).
	NestedBlocks bool
	// Quotes open escapable literals that end at an unescaped newline.
	Quotes string
	// MultilineQuotes open escapable literals that may span lines.
	MultilineQuotes string
	// RawQuotes open literals with no escapes that may span lines.
	RawQuotes string
	// TripleQuotes makes a tripled Quotes character open a multi-line literal.
	TripleQuotes bool
	Escape       byte
}

type span struct {
	start int
	end   int
}

// View is normalized content plus the literal spans found in it.
type View struct {
	// Text has the length of the source; comment bytes are spaces.
	Text  string
	spans []span
}

// Line is one line of a View that starts outside any string literal.
type Line struct {
	Offset int
	Text   string
}

// Normalize scans src according to syn.
func Normalize(src string, syn Syntax) *View {
	esc := syn.Escape
	if esc == 0 {
		esc = DefaultEscape
	}

	sc := &scanner{src: src, out: []byte(src), syn: syn, esc: esc}
	sc.run()

	return &View{Text: string(sc.out), spans: sc.spans}
}

// InString reports whether offset lies inside a string literal. The opening
// quote itself is outside; the closing quote is inside.
func (v *View) InString(offset int) bool {
	idx := sort.Search(len(v.spans), func(i int) bool { return v.spans[i].end > offset })

	return idx < len(v.spans) && v.spans[idx].start <= offset
}

// CodeLines returns the non-blank lines whose first non-blank byte is not
// inside a string literal.
func (v *View) CodeLines() []Line {
	var lines []Line

	offset := 0

	for raw := range strings.SplitSeq(v.Text, "\n") {
		trimmed := strings.TrimLeft(raw, " \t\r\f\v")
		if trimmed != "" && !v.InString(offset+len(raw)-len(trimmed)) {
			lines = append(lines, Line{Offset: offset, Text: raw})
		}

		offset += len(raw) + 1
	}

	return lines
}

type scanner struct {
	src   string
	out   []byte
	syn   Syntax
	esc   byte
	spans []span
}

func (s *scanner) run() {
	pos := 0
	for pos < len(s.src) {
		pos = s.step(pos)
	}
}

func (s *scanner) step(pos int) int {
	if bc, ok := s.blockAt(pos); ok {
		return s.skipBlock(pos, bc)
	}

	if s.lineCommentAt(pos) {
		return s.skipLine(pos)
	}

	quote := s.src[pos]

	switch {
	case s.syn.TripleQuotes && strings.IndexByte(s.syn.Quotes, quote) >= 0 && s.isTriple(pos):
		return s.skipTriple(pos, quote)
	case strings.IndexByte(s.syn.Quotes, quote) >= 0:
		return s.skipString(pos, quote, true, false)
	case strings.IndexByte(s.syn.MultilineQuotes, quote) >= 0:
		return s.skipString(pos, quote, true, true)
	case strings.IndexByte(s.syn.RawQuotes, quote) >= 0:
		return s.skipString(pos, quote, false, true)
	}

	return pos + 1
}

func (s *scanner) blockAt(pos int) (BlockComment, bool) {
	for _, bc := range s.syn.BlockComments {
		if bc.LineStart && pos > 0 && s.src[pos-1] != '\n' {
			continue
		}

		if strings.HasPrefix(s.src[pos:], bc.Open) {
			return bc, true
		}
	}

	return BlockComment{}, false
}

func (s *scanner) lineCommentAt(pos int) bool {
	for _, marker := range s.syn.LineComments {
		if strings.HasPrefix(s.src[pos:], marker) {
			return true
		}
	}

	return false
}

func (s *scanner) skipBlock(pos int, bc BlockComment) int {
	depth := 1
	cur := pos + len(bc.Open)

	for cur < len(s.src) && depth > 0 {
		switch {
		case strings.HasPrefix(s.src[cur:], bc.Close):
			depth--
			cur += len(bc.Close)
		case s.syn.NestedBlocks && strings.HasPrefix(s.src[cur:], bc.Open):
			depth++
			cur += len(bc.Open)
		default:
			cur++
		}
	}

	s.blank(pos, cur)

	return cur
}

func (s *scanner) skipLine(pos int) int {
	end := strings.IndexByte(s.src[pos:], '\n')
	if end < 0 {
		end = len(s.src)
	} else {
		end += pos
	}

	s.blank(pos, end)

	return end
}

func (s *scanner) isTriple(pos int) bool {
	quote := s.src[pos]

	return pos+tripleLen <= len(s.src) && s.src[pos+1] == quote && s.src[pos+2] == quote
}

func (s *scanner) skipTriple(pos int, quote byte) int {
	cur := pos + tripleLen

	for cur < len(s.src) {
		if s.src[cur] == s.esc {
			cur += 2

			continue
		}

		if s.src[cur] == quote && s.isTriple(cur) {
			s.spans = append(s.spans, span{start: pos + tripleLen, end: cur + tripleLen})

			return cur + tripleLen
		}

		cur++
	}

	s.spans = append(s.spans, span{start: pos + tripleLen, end: len(s.src)})

	return len(s.src)
}

// skipString records a literal opened at pos. Unterminated single-line
// literals end at the newline so one stray quote cannot swallow the file.
func (s *scanner) skipString(pos int, quote byte, escapable, multiline bool) int {
	cur := pos + 1

	for cur < len(s.src) {
		ch := s.src[cur]

		switch {
		case escapable && ch == s.esc:
			cur += 2

			continue
		case ch == quote:
			s.spans = append(s.spans, span{start: pos + 1, end: cur + 1})

			return cur + 1
		case ch == '\n' && !multiline:
			s.spans = append(s.spans, span{start: pos + 1, end: cur})

			return cur
		}

		cur++
	}

	end := min(cur, len(s.src))
	s.spans = append(s.spans, span{start: pos + 1, end: end})

	return end
}

func (s *scanner) blank(from, to int) {
	for i := from; i < to && i < len(s.out); i++ {
		if s.out[i] != '\n' {
			s.out[i] = ' '
		}
	}
}
