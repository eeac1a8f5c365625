package dumper

import (
	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/token"
)

// output is the growing list of dumped lines. Positions of appended
// tokens are computed from the lines already in the list.
type output struct {
	lines Lines
	eol   string
}

// open starts a new line. An empty line that ended the file is replaced;
// any other line that ended the file gets the preferred terminator.
func (o *output) open() *model.Line {
	offset := 0
	if n := len(o.lines); n > 0 {
		last := o.lines[n-1]
		switch {
		case last.IsEOF() && len(last.Elements) == 0:
			o.lines = o.lines[:n-1]
			offset = last.Offset
		case last.IsEOF():
			last.SetEOL(o.eolToken())
			offset = last.End()
		default:
			offset = last.End()
		}
	}
	l := model.NewLine(len(o.lines)+1, offset)
	o.lines = append(o.lines, l)
	return l
}

// copyLine appends a clean copy of a source line
func (o *output) copyLine(src *model.Line) {
	l := o.open()
	for _, el := range src.Elements {
		l.Append(el.Clone())
	}
	if src.EOL != nil {
		l.SetEOL(src.EOL.Clone())
	} else {
		l.SetEOL(eofToken())
	}
}

// finish appends the end of file line when it is missing
func (o *output) finish() {
	if n := len(o.lines); n > 0 && o.lines[n-1].IsEOF() {
		return
	}
	l := model.NewLine(len(o.lines)+1, 0)
	if n := len(o.lines); n > 0 {
		l = model.NewLine(n+1, o.lines[n-1].End())
	}
	l.SetEOL(eofToken())
	o.lines = append(o.lines, l)
}

func (o *output) eolToken() *model.Token {
	return model.SourceToken(model.TypeEndOfLine, o.eol, token.Unset)
}

func eofToken() *model.Token {
	return model.SourceToken(model.TypeEndOfLine, "", token.Unset)
}
