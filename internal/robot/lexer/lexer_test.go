package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/tabwerk/internal/robot/token"
)

func kinds(line *token.Line) []token.Kind {
	out := make([]token.Kind, 0, len(line.Tokens))
	for _, t := range line.Tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestLexer_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "settings header",
			input: "*** Settings ***",
			want:  []token.Kind{token.ManyAsterisks, token.SingleSpace, token.Word, token.SingleSpace, token.ManyAsterisks},
		},
		{
			name:  "single asterisk header",
			input: "*Keyword*",
			want:  []token.Kind{token.SingleAsterisk, token.Word, token.SingleAsterisk},
		},
		{
			name:  "scalar variable",
			input: "${a}",
			want:  []token.Kind{token.Dollar, token.LeftCurly, token.Word, token.RightCurly},
		},
		{
			name:  "separator and tab",
			input: "Log  x\ty",
			want:  []token.Kind{token.Word, token.DoubleSpace, token.Word, token.Tab, token.Word},
		},
		{
			name:  "continuation",
			input: "...    a",
			want:  []token.Kind{token.ManyDots, token.DoubleSpace, token.Word},
		},
		{
			name:  "bracket setting with colon",
			input: "[Documentation]:",
			want:  []token.Kind{token.LeftSquare, token.Word, token.RightSquare, token.Colon},
		},
		{
			name:  "escaped hash",
			input: `\# not`,
			want:  []token.Kind{token.Backslash, token.Hash, token.SingleSpace, token.Word},
		},
		{
			name:  "pipe line",
			input: "| a | b |",
			want: []token.Kind{
				token.Pipe, token.SingleSpace, token.Word, token.SingleSpace,
				token.Pipe, token.SingleSpace, token.Word, token.SingleSpace, token.Pipe,
			},
		},
		{
			name:  "escaped space before separator",
			input: `a\     b`,
			want:  []token.Kind{token.Word, token.Backslash, token.SingleSpace, token.DoubleSpace, token.Word},
		},
		{
			name:  "escaped backslash does not escape space",
			input: `a\\  b`,
			want:  []token.Kind{token.Word, token.Backslash, token.Backslash, token.DoubleSpace, token.Word},
		},
		{
			name:  "lone backslash keeps separator",
			input: `\    a`,
			want:  []token.Kind{token.Backslash, token.DoubleSpace, token.Word},
		},
		{
			name:  "leading escaped space",
			input: `x    \ a`,
			want:  []token.Kind{token.Word, token.DoubleSpace, token.Backslash, token.SingleSpace, token.Word},
		},
		{
			name:  "unicode word",
			input: "Größe=1",
			want:  []token.Kind{token.Word, token.Equals, token.Word},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Tokenize(tt.input)
			if len(lines) != 1 {
				t.Fatalf("Tokenize() returned %d lines, want 1", len(lines))
			}
			if diff := cmp.Diff(tt.want, kinds(lines[0])); diff != "" {
				t.Errorf("Tokenize() kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLexer_LineTerminators(t *testing.T) {
	input := "a\nb\r\nc\rd"
	lines := Tokenize(input)

	wantEOL := []token.Kind{token.LineFeed, token.CarriageReturnLineFeed, token.CarriageReturn, token.EOF}
	if len(lines) != len(wantEOL) {
		t.Fatalf("Tokenize() returned %d lines, want %d", len(lines), len(wantEOL))
	}
	for i, line := range lines {
		if line.EOL.Kind != wantEOL[i] {
			t.Errorf("line %d EOL = %v, want %v", i+1, line.EOL.Kind, wantEOL[i])
		}
		if line.Number != i+1 {
			t.Errorf("line %d Number = %d", i+1, line.Number)
		}
	}
}

func TestLexer_TrailingNewlineYieldsEmptyLastLine(t *testing.T) {
	lines := Tokenize("a\n")
	if len(lines) != 2 {
		t.Fatalf("Tokenize() returned %d lines, want 2", len(lines))
	}
	last := lines[1]
	if len(last.Tokens) != 0 || last.EOL.Kind != token.EOF {
		t.Errorf("last line = %+v, want empty line with EOF", last)
	}
}

func TestLexer_RoundTrip(t *testing.T) {
	input := "*** Test Cases ***\r\nCase\n    Log    ${x}    # note\n| a | b |\n\n"
	var sb strings.Builder
	for _, line := range Tokenize(input) {
		sb.WriteString(line.Text())
		sb.WriteString(line.EOL.Text)
	}
	if sb.String() != input {
		t.Errorf("reassembled = %q, want %q", sb.String(), input)
	}
}

func TestLexer_Positions(t *testing.T) {
	lines := Tokenize("x\n  Log")
	second := lines[1]
	if second.Offset != 2 {
		t.Errorf("Offset = %d, want 2", second.Offset)
	}
	logTok := second.Tokens[1]
	want := token.Position{Line: 2, Column: 2, Offset: 4}
	if logTok.Pos != want {
		t.Errorf("Pos = %+v, want %+v", logTok.Pos, want)
	}
}
