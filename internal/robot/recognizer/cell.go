package recognizer

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// CellRecognizer applies a per-cell match function to every cell of a
// line
type CellRecognizer struct {
	name   string
	format token.Format
	match  func(line *token.Line, cells []Segment) []*Context
}

// Name implements Recognizer
func (r *CellRecognizer) Name() string {
	return r.name
}

// Recognize implements Recognizer
func (r *CellRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, func(line *token.Line) []*Context {
		return r.match(line, Cells(line, line.Dialect(r.format)))
	})
}

// NewContinuationRecognizer recognizes the "..." marker that continues
// the previous row. Only empty cell markers may precede it.
func NewContinuationRecognizer(format token.Format) *CellRecognizer {
	return &CellRecognizer{
		name:   "continuation",
		format: format,
		match: func(line *token.Line, cells []Segment) []*Context {
			for _, c := range cells {
				toks := line.Tokens[c.From:c.To]
				if isEmptyCellMarker(toks) {
					continue
				}
				if len(toks) == 1 && toks[0].Kind == token.ManyDots && toks[0].Text == "..." {
					return []*Context{newContext(ContextContinuation, line, c.From, c.To)}
				}
				return nil
			}
			return nil
		},
	}
}

// NewEmptyCellRecognizer recognizes cells holding a lone backslash
func NewEmptyCellRecognizer(format token.Format) *CellRecognizer {
	return &CellRecognizer{
		name:   "empty-cell",
		format: format,
		match: func(line *token.Line, cells []Segment) []*Context {
			var out []*Context
			for _, c := range cells {
				if isEmptyCellMarker(line.Tokens[c.From:c.To]) {
					out = append(out, newContext(ContextEmptyCell, line, c.From, c.To))
				}
			}
			return out
		},
	}
}

// NewEscapedRecognizer recognizes backslash escapes. "\x41", "\u00e4" and
// "\U0001F600" are hex values, any other escaped token is an escaped
// character.
func NewEscapedRecognizer(format token.Format) *CellRecognizer {
	return &CellRecognizer{
		name:   "escaped",
		format: format,
		match: func(line *token.Line, cells []Segment) []*Context {
			var out []*Context
			for _, c := range cells {
				toks := line.Tokens[c.From:c.To]
				if isEmptyCellMarker(toks) {
					continue
				}
				for i := 0; i+1 < len(toks); i++ {
					if toks[i].Kind != token.Backslash {
						continue
					}
					t := ContextEscapedCharacter
					if isHexEscape(toks[i+1]) {
						t = ContextEscapedHexValue
					}
					out = append(out, newContext(t, line, c.From+i, c.From+i+2))
					i++
				}
			}
			return out
		},
	}
}

// isHexEscape accepts x plus 2, u plus 4 or U plus 8 hex digits
func isHexEscape(t token.Token) bool {
	if t.Kind != token.Word || len(t.Text) < 2 {
		return false
	}
	var n int
	switch t.Text[0] {
	case 'x':
		n = 2
	case 'u':
		n = 4
	case 'U':
		n = 8
	default:
		return false
	}
	digits := t.Text[1:]
	if len(digits) != n {
		return false
	}
	return strings.Trim(digits, "0123456789abcdefABCDEF") == ""
}

// QuotedRecognizer finds double quoted sentences within a cell
type QuotedRecognizer struct{}

// NewQuotedSentenceRecognizer creates the quoted sentence recognizer
func NewQuotedSentenceRecognizer() *QuotedRecognizer {
	return &QuotedRecognizer{}
}

// Name implements Recognizer
func (r *QuotedRecognizer) Name() string {
	return "quoted-sentence"
}

// Recognize implements Recognizer
func (r *QuotedRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, r.recognizeLine)
}

func (r *QuotedRecognizer) recognizeLine(line *token.Line) []*Context {
	var out []*Context
	toks := line.Tokens
	esc := escapedTokens(toks)
	open := -1
	for i, t := range toks {
		switch {
		case t.Kind == token.Quote && !esc[i]:
			if open < 0 {
				open = i
				continue
			}
			out = append(out, newContext(ContextQuotedSentence, line, open, i+1))
			open = -1
		case t.Kind.IsEndOfLine():
			open = -1
		}
	}
	return out
}
