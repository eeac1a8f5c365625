package recognizer

import (
	"strings"

	"github.com/msto63/tabwerk/internal/robot/token"
)

// forState is the progress through a for loop header row
type forState int

const (
	forStart    forState = iota // before the loop marker
	forMarker                   // ":FOR" or "FOR" seen
	forVariable                 // at least one loop variable seen
	forIn                       // "IN" seen, "RANGE" may follow
	forDone
)

// ForLoopRecognizer finds loop headers like
// ":FOR    ${i}    IN RANGE    10". The context spans the marker cell up
// to and including the IN (RANGE) cell.
type ForLoopRecognizer struct {
	format token.Format
}

// NewForLoopHeaderRecognizer creates the for loop header recognizer
func NewForLoopHeaderRecognizer(format token.Format) *ForLoopRecognizer {
	return &ForLoopRecognizer{format: format}
}

// Name implements Recognizer
func (r *ForLoopRecognizer) Name() string {
	return "for-loop-header"
}

// Recognize implements Recognizer
func (r *ForLoopRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, r.recognizeLine)
}

func (r *ForLoopRecognizer) recognizeLine(line *token.Line) []*Context {
	state := forStart
	from, to := -1, -1

	for _, cell := range Cells(line, line.Dialect(r.format)) {
		toks := line.Tokens[cell.From:cell.To]
		switch state {
		case forStart:
			if isEmptyCellMarker(toks) {
				continue
			}
			if !isLoopMarker(toks) {
				return nil
			}
			from, state = cell.From, forMarker
		case forMarker, forVariable:
			switch {
			case isLoopVariable(toks):
				state = forVariable
			case state == forVariable && isIn(toks):
				to, state = cell.To, forIn
				if isInRange(toks) {
					state = forDone
				}
			default:
				return nil
			}
		case forIn:
			if isWord(toks, "RANGE") {
				to = cell.To
			}
			state = forDone
		}
		if state == forDone {
			break
		}
	}

	if to < 0 {
		return nil
	}
	return []*Context{newContext(ContextForLoopHeader, line, from, to)}
}

// isLoopMarker accepts ":FOR", ": FOR" (case-insensitive) and "FOR"
func isLoopMarker(toks []token.Token) bool {
	switch {
	case len(toks) == 1:
		return toks[0].Kind == token.Word && toks[0].Text == "FOR"
	case len(toks) == 2:
		return toks[0].Kind == token.Colon && toks[1].Kind == token.Word && strings.EqualFold(toks[1].Text, "for")
	case len(toks) == 3:
		return toks[0].Kind == token.Colon && toks[1].Kind == token.SingleSpace &&
			toks[2].Kind == token.Word && strings.EqualFold(toks[2].Text, "for")
	}
	return false
}

// isLoopVariable accepts a cell holding a single scalar or list variable
func isLoopVariable(toks []token.Token) bool {
	n := len(toks)
	if n < 3 || toks[1].Kind != token.LeftCurly || toks[n-1].Kind != token.RightCurly {
		return false
	}
	return toks[0].Kind == token.Dollar || toks[0].Kind == token.At
}

func isIn(toks []token.Token) bool {
	return isWord(toks, "IN") || isInRange(toks)
}

func isInRange(toks []token.Token) bool {
	return len(toks) == 3 && isWord(toks[:1], "IN") &&
		toks[1].Kind == token.SingleSpace && isWord(toks[2:], "RANGE")
}

func isWord(toks []token.Token, w string) bool {
	return len(toks) == 1 && toks[0].Kind == token.Word && strings.EqualFold(toks[0].Text, w)
}

func isEmptyCellMarker(toks []token.Token) bool {
	return len(toks) == 1 && toks[0].Kind == token.Backslash
}
