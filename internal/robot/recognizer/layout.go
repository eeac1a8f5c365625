package recognizer

import "github.com/msto63/tabwerk/internal/robot/token"

// SegmentKind classifies a run of tokens within a line
type SegmentKind int

const (
	SegmentCell SegmentKind = iota
	SegmentSeparator
	SegmentPrettyAlign
)

// String returns a string representation of the segment kind
func (k SegmentKind) String() string {
	switch k {
	case SegmentSeparator:
		return "separator"
	case SegmentPrettyAlign:
		return "pretty-align"
	default:
		return "cell"
	}
}

// Segment is a half-open token index range [From, To) of a line
type Segment struct {
	Kind SegmentKind
	From int
	To   int
}

// Segments splits a line into cells, separators and pretty-align runs.
// The segments cover every token of the line in order. Cells never have
// zero length; empty pipe or tsv cells show up as two separators that
// follow each other.
func Segments(line *token.Line, d token.Dialect) []Segment {
	var segs []Segment
	switch d {
	case token.DialectPipe:
		segs = pipeSegments(line.Tokens)
	case token.DialectTsv:
		segs = tsvSegments(line.Tokens)
	default:
		segs = spaceSegments(line.Tokens)
	}
	return mergeCells(segs)
}

// Cells returns only the cell segments of a line
func Cells(line *token.Line, d token.Dialect) []Segment {
	var cells []Segment
	for _, s := range Segments(line, d) {
		if s.Kind == SegmentCell {
			cells = append(cells, s)
		}
	}
	return cells
}

// spaceSegments handles tabulator or double space separated lines. The
// first tabulator or double space of a whitespace run is the separator,
// the rest of the run is pretty-align. Runs of single spaces belong to
// the surrounding cell.
func spaceSegments(toks []token.Token) []Segment {
	var segs []Segment
	esc := escapedTokens(toks)
	for i := 0; i < len(toks); {
		if !toks[i].Kind.IsWhitespace() || esc[i] {
			segs = append(segs, Segment{Kind: SegmentCell, From: i, To: i + 1})
			i++
			continue
		}

		j := i
		sep := -1
		for j < len(toks) && toks[j].Kind.IsWhitespace() && !esc[j] {
			if sep < 0 && (toks[j].Kind == token.Tab || toks[j].Kind == token.DoubleSpace) {
				sep = j
			}
			j++
		}

		if sep < 0 {
			segs = append(segs, Segment{Kind: SegmentCell, From: i, To: j})
		} else {
			segs = append(segs, Segment{Kind: SegmentSeparator, From: i, To: sep + 1})
			if sep+1 < j {
				segs = append(segs, Segment{Kind: SegmentPrettyAlign, From: sep + 1, To: j})
			}
		}
		i = j
	}
	return segs
}

// pipeSegments handles "| cell | cell |" lines. A pipe is a separator
// when it opens the line or is surrounded by whitespace (or ends the
// line); the whitespace around separating pipes is pretty-align.
func pipeSegments(toks []token.Token) []Segment {
	if len(toks) == 0 {
		return nil
	}

	segs := []Segment{{Kind: SegmentSeparator, From: 0, To: 1}}
	esc := escapedTokens(toks)
	for i := 1; i < len(toks); {
		if !toks[i].Kind.IsWhitespace() || esc[i] {
			segs = append(segs, Segment{Kind: SegmentCell, From: i, To: i + 1})
			i++
			continue
		}

		j := i
		for j < len(toks) && toks[j].Kind.IsWhitespace() && !esc[j] {
			j++
		}

		switch {
		case j < len(toks) && toks[j].Kind == token.Pipe && (j+1 == len(toks) || toks[j+1].Kind.IsWhitespace()):
			segs = append(segs,
				Segment{Kind: SegmentPrettyAlign, From: i, To: j},
				Segment{Kind: SegmentSeparator, From: j, To: j + 1})
			j++
		case j == len(toks) || segs[len(segs)-1].Kind == SegmentSeparator:
			segs = append(segs, Segment{Kind: SegmentPrettyAlign, From: i, To: j})
		default:
			segs = append(segs, Segment{Kind: SegmentCell, From: i, To: j})
		}
		i = j
	}
	return segs
}

// escapedTokens marks every token that directly follows an unescaped
// backslash. A space is only escaped where the lexer split it off: behind
// cell content, or as a single space in front of cell content.
func escapedTokens(toks []token.Token) []bool {
	esc := make([]bool, len(toks))
	pending, solid := false, false
	for i, t := range toks {
		if pending {
			esc[i] = !t.Kind.IsWhitespace() ||
				(t.Kind == token.SingleSpace && (solid || contentFollows(toks, i)))
		}
		if t.Kind == token.Backslash && !esc[i] {
			pending = true
			continue
		}
		pending = false
		solid = !t.Kind.IsWhitespace() || esc[i]
	}
	return esc
}

// contentFollows reports whether the token behind i is cell content
func contentFollows(toks []token.Token, i int) bool {
	if i+1 >= len(toks) {
		return false
	}
	k := toks[i+1].Kind
	return !k.IsWhitespace() && k != token.Pipe
}

// tsvSegments makes every tabulator a separator of its own
func tsvSegments(toks []token.Token) []Segment {
	segs := make([]Segment, 0, len(toks))
	for i, t := range toks {
		kind := SegmentCell
		if t.Kind == token.Tab {
			kind = SegmentSeparator
		}
		segs = append(segs, Segment{Kind: kind, From: i, To: i + 1})
	}
	return segs
}

// mergeCells joins neighbouring cell segments
func mergeCells(segs []Segment) []Segment {
	out := segs[:0]
	for _, s := range segs {
		if n := len(out); n > 0 && s.Kind == SegmentCell && out[n-1].Kind == SegmentCell {
			out[n-1].To = s.To
			continue
		}
		out = append(out, s)
	}
	return out
}

// cellStarts returns the set of token indices that open a cell
func cellStarts(line *token.Line, d token.Dialect) map[int]int {
	starts := make(map[int]int)
	for _, c := range Cells(line, d) {
		starts[c.From] = c.To
	}
	return starts
}

// cellEnds returns the set of token indices directly behind a cell
func cellEnds(line *token.Line, d token.Dialect) map[int]bool {
	ends := make(map[int]bool)
	for _, c := range Cells(line, d) {
		ends[c.To] = true
	}
	return ends
}
