package section

import (
	"github.com/msto63/tabwerk/internal/robot/recognizer"
	"github.com/msto63/tabwerk/internal/robot/token"
)

// Row is the cell layout of one line together with its contexts
type Row struct {
	Line     *token.Line
	Dialect  token.Dialect
	Segments []recognizer.Segment
	Cells    []recognizer.Segment
	Contexts []*recognizer.Context
}

// Analyze splits a line into segments for the given file format
func Analyze(line *token.Line, format token.Format, contexts []*recognizer.Context) *Row {
	d := line.Dialect(format)
	r := &Row{
		Line:     line,
		Dialect:  d,
		Segments: recognizer.Segments(line, d),
		Contexts: contexts,
	}
	for _, s := range r.Segments {
		if s.Kind == recognizer.SegmentCell {
			r.Cells = append(r.Cells, s)
		}
	}
	return r
}

// IsBlank reports whether the line has no cell
func (r *Row) IsBlank() bool {
	return len(r.Cells) == 0
}

// separatorsBefore counts the separators in front of token index from.
// ok is false when a cell lies in front of it.
func (r *Row) separatorsBefore(from int) (n int, ok bool) {
	for _, s := range r.Segments {
		if s.From >= from {
			break
		}
		switch s.Kind {
		case recognizer.SegmentSeparator:
			n++
		case recognizer.SegmentCell:
			return n, false
		}
	}
	return n, true
}

// ReallyFirst applies the position policy of declarations and headers:
// on pipe lines only the opening pipe may precede the token, on other
// lines nothing may.
func (r *Row) ReallyFirst(from int) bool {
	n, ok := r.separatorsBefore(from)
	if !ok {
		return false
	}
	if r.Dialect == token.DialectPipe {
		return n == 1
	}
	return n == 0
}

// First returns the first cell
func (r *Row) First() (recognizer.Segment, bool) {
	if len(r.Cells) == 0 {
		return recognizer.Segment{}, false
	}
	return r.Cells[0], true
}

// Header returns the table header context of the line, if any
func (r *Row) Header() *recognizer.Context {
	first, ok := r.First()
	if !ok || !r.ReallyFirst(first.From) {
		return nil
	}
	for _, c := range recognizer.StartingAt(r.Contexts, first.From) {
		if c.Type.IsTableHeader() || c.Type.IsIncorrectTableHeader() || c.Type == recognizer.ContextUserTableHeader {
			return c
		}
	}
	return nil
}

// IsContinuation reports whether the line continues the previous row
func (r *Row) IsContinuation() bool {
	return recognizer.Find(r.Contexts, recognizer.ContextContinuation) != nil
}

// StartsComment reports whether a hash comment opens at the cell
func (r *Row) StartsComment(cell recognizer.Segment) bool {
	for _, c := range recognizer.StartingAt(r.Contexts, cell.From) {
		if c.Type == recognizer.ContextDeclaredComment {
			return true
		}
	}
	return false
}

// CommentOnly reports whether the first cell opens a comment
func (r *Row) CommentOnly() bool {
	first, ok := r.First()
	return ok && r.StartsComment(first)
}

// Declaration returns the settings table declaration at the start of
// the line, if any
func (r *Row) Declaration() *recognizer.Context {
	first, ok := r.First()
	if !ok || !r.ReallyFirst(first.From) {
		return nil
	}
	for _, c := range recognizer.StartingAt(r.Contexts, first.From) {
		if c.Type.IsSettingDeclaration() && c.To == first.To {
			return c
		}
	}
	return nil
}

// ElementSetting returns the bracketed setting that fills the cell, if any
func (r *Row) ElementSetting(cell recognizer.Segment) *recognizer.Context {
	for _, c := range recognizer.StartingAt(r.Contexts, cell.From) {
		if c.Type.IsElementSetting() && c.To == cell.To {
			return c
		}
	}
	return nil
}

// Continuation returns the cell holding the continuation marker
func (r *Row) Continuation() (recognizer.Segment, bool) {
	c := recognizer.Find(r.Contexts, recognizer.ContextContinuation)
	if c == nil {
		return recognizer.Segment{}, false
	}
	for _, cell := range r.Cells {
		if cell.From == c.From {
			return cell, true
		}
	}
	return recognizer.Segment{}, false
}
