package recognizer

import "github.com/msto63/tabwerk/internal/robot/token"

// SeparatorRecognizer reports the cell separators and pretty-align runs of
// lines written in one dialect
type SeparatorRecognizer struct {
	name    string
	format  token.Format
	dialect token.Dialect
	ctx     ContextType
}

// NewTabOrDoubleSpaceSeparatorRecognizer recognizes separators of plain
// text lines
func NewTabOrDoubleSpaceSeparatorRecognizer() *SeparatorRecognizer {
	return &SeparatorRecognizer{
		name:    "tab-or-double-space-separator",
		format:  token.FormatTxt,
		dialect: token.DialectSpace,
		ctx:     ContextTabOrDoubleSpaceSeparator,
	}
}

// NewPipeSeparatorRecognizer recognizes separators of "| a | b |" lines
func NewPipeSeparatorRecognizer() *SeparatorRecognizer {
	return &SeparatorRecognizer{
		name:    "pipe-separator",
		format:  token.FormatTxt,
		dialect: token.DialectPipe,
		ctx:     ContextPipeSeparator,
	}
}

// NewTsvSeparatorRecognizer recognizes the tabulators of tsv lines
func NewTsvSeparatorRecognizer() *SeparatorRecognizer {
	return &SeparatorRecognizer{
		name:    "tsv-separator",
		format:  token.FormatTsv,
		dialect: token.DialectTsv,
		ctx:     ContextTsvSeparator,
	}
}

// Name implements Recognizer
func (r *SeparatorRecognizer) Name() string {
	return r.name
}

// Recognize implements Recognizer
func (r *SeparatorRecognizer) Recognize(lines []*token.Line, iv token.Interval) []*Context {
	return eachLine(lines, iv, r.recognizeLine)
}

func (r *SeparatorRecognizer) recognizeLine(line *token.Line) []*Context {
	if line.Dialect(r.format) != r.dialect {
		return nil
	}

	var out []*Context
	for _, s := range Segments(line, r.dialect) {
		switch s.Kind {
		case SegmentSeparator:
			out = append(out, newContext(r.ctx, line, s.From, s.To))
		case SegmentPrettyAlign:
			out = append(out, newContext(ContextPrettyAlign, line, s.From, s.To))
		}
	}
	return out
}
