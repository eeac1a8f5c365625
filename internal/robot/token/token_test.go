package token

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{Word, "WORD"},
		{ManyAsterisks, "MANY_ASTERISKS"},
		{DoubleSpace, "DOUBLE_SPACE"},
		{CarriageReturnLineFeed, "CRLF"},
		{EOF, "EOF"},
		{Kind(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPosition_Compare(t *testing.T) {
	a := Position{Line: 1, Column: 0, Offset: 0}
	b := Position{Line: 1, Column: 4, Offset: 4}

	tests := []struct {
		name string
		p, o Position
		want int
	}{
		{"less", a, b, -1},
		{"greater", b, a, 1},
		{"equal", a, a, 0},
		{"unset first", Unset, a, -1},
		{"set after unset", a, Unset, 1},
		{"both unset", Unset, Unset, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Compare(tt.o); got != tt.want {
				t.Errorf("Compare() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToken_End(t *testing.T) {
	tok := Token{Kind: Word, Text: "Library", Pos: Position{Line: 2, Column: 3, Offset: 20}}
	end := tok.End()
	if end.Column != 10 || end.Offset != 27 || end.Line != 2 {
		t.Errorf("End() = %+v, want 2:10 offset 27", end)
	}

	synthetic := Token{Kind: Word, Text: "x", Pos: Unset}
	if synthetic.End().IsSet() {
		t.Error("End() of unset token should be unset")
	}
}

func TestLine_TextAndBlank(t *testing.T) {
	line := &Line{Tokens: []Token{
		{Kind: Word, Text: "Log"},
		{Kind: DoubleSpace, Text: "    "},
		{Kind: Word, Text: "x"},
	}}
	if got := line.Text(); got != "Log    x" {
		t.Errorf("Text() = %q, want %q", got, "Log    x")
	}
	if line.IsBlank() {
		t.Error("IsBlank() = true, want false")
	}

	blank := &Line{Tokens: []Token{{Kind: Tab, Text: "\t"}}}
	if !blank.IsBlank() {
		t.Error("IsBlank() = false, want true")
	}
	if blank.FirstNonWhitespace() != -1 {
		t.Errorf("FirstNonWhitespace() = %d, want -1", blank.FirstNonWhitespace())
	}
}

func TestInterval_Clamp(t *testing.T) {
	iv := Interval{Start: -2, End: 10}.Clamp(4)
	if iv.Start != 0 || iv.End != 4 {
		t.Errorf("Clamp() = %+v, want {0 4}", iv)
	}
	iv = Interval{Start: 3, End: 1}.Clamp(4)
	if iv.End != iv.Start {
		t.Errorf("Clamp() = %+v, want empty interval", iv)
	}
}

func TestFormatForFile(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"suite.robot", FormatTxt},
		{"suite.txt", FormatTxt},
		{"suite.TSV", FormatTsv},
		{"dir.tsv/suite.robot", FormatTxt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatForFile(tt.name); got != tt.want {
				t.Errorf("FormatForFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLine_Dialect(t *testing.T) {
	pipe := &Line{Tokens: []Token{{Kind: Pipe, Text: "|"}, {Kind: SingleSpace, Text: " "}}}
	glued := &Line{Tokens: []Token{{Kind: Pipe, Text: "|"}, {Kind: Word, Text: "x"}}}
	lone := &Line{Tokens: []Token{{Kind: Pipe, Text: "|"}}}

	tests := []struct {
		name   string
		line   *Line
		format Format
		want   Dialect
	}{
		{"pipe line", pipe, FormatTxt, DialectPipe},
		{"pipe glued to word", glued, FormatTxt, DialectSpace},
		{"lone pipe", lone, FormatTxt, DialectPipe},
		{"tsv ignores pipes", pipe, FormatTsv, DialectTsv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Dialect(tt.format); got != tt.want {
				t.Errorf("Dialect() = %v, want %v", got, tt.want)
			}
		})
	}
}
