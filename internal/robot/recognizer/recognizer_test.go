package recognizer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/msto63/tabwerk/internal/robot/lexer"
	"github.com/msto63/tabwerk/internal/robot/token"
)

type recognizeCase struct {
	name      string
	r         Recognizer
	input     string
	wantTexts []string
	wantTypes []ContextType
}

func runRecognizeCases(t *testing.T, tests []recognizeCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recognize(tt.r, tt.input)
			if diff := cmp.Diff(tt.wantTexts, texts(got), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Recognize() texts mismatch (-want +got):\n%s", diff)
			}
			if tt.wantTypes == nil {
				return
			}
			if diff := cmp.Diff(tt.wantTypes, types(got)); diff != "" {
				t.Errorf("Recognize() types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVariableRecognizers(t *testing.T) {
	line := "${a} and @{b}[0] and &{c}[key]"
	var got []string
	for _, r := range []Recognizer{
		NewScalarVariableRecognizer(),
		NewListVariableRecognizer(),
		NewDictionaryVariableRecognizer(),
		NewEnvironmentVariableRecognizer(),
	} {
		got = append(got, texts(recognize(r, line))...)
	}
	want := []string{"${a}", "@{b}[0]", "&{c}[key]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}

	runRecognizeCases(t, []recognizeCase{
		{name: "incomplete", r: NewScalarVariableRecognizer(), input: "${incomplete"},
		{name: "space after sigil", r: NewScalarVariableRecognizer(), input: "$ {a}"},
		{name: "escaped sigil", r: NewScalarVariableRecognizer(), input: `\${a}`},
		{
			name:      "nested variable",
			r:         NewScalarVariableRecognizer(),
			input:     "${a${b}}",
			wantTexts: []string{"${a${b}}"},
		},
		{
			name:      "unclosed outer keeps inner",
			r:         NewScalarVariableRecognizer(),
			input:     "${a${b}",
			wantTexts: []string{"${b}"},
		},
		{
			name:      "item access must follow directly",
			r:         NewScalarVariableRecognizer(),
			input:     "${a} [0]",
			wantTexts: []string{"${a}"},
		},
		{
			name:      "environment variable",
			r:         NewEnvironmentVariableRecognizer(),
			input:     "Log    %{HOME}",
			wantTexts: []string{"%{HOME}"},
			wantTypes: []ContextType{ContextEnvironmentVariable},
		},
	})
}

func TestDeclarationRecognizers(t *testing.T) {
	settings := SettingDeclarationRecognizers(token.FormatTxt)
	elements := ElementSettingRecognizers(token.FormatTxt)

	runRecognizeCases(t, []recognizeCase{
		{
			name:      "library",
			r:         byName(t, settings, "setting-library"),
			input:     "Library    Collections",
			wantTexts: []string{"Library"},
			wantTypes: []ContextType{ContextSettingLibrary},
		},
		{
			name:      "trailing colon",
			r:         byName(t, settings, "setting-suite-setup"),
			input:     "Suite Setup:    Log    x",
			wantTexts: []string{"Suite Setup:"},
		},
		{
			name:      "alias",
			r:         byName(t, settings, "setting-test-teardown"),
			input:     "test postcondition    Close",
			wantTexts: []string{"test postcondition"},
			wantTypes: []ContextType{ContextSettingTestTeardown},
		},
		{
			name:  "declaration must end at a cell end",
			r:     byName(t, settings, "setting-library"),
			input: "Library Foo",
		},
		{
			name:      "with name is case-sensitive",
			r:         byName(t, settings, "setting-with-name"),
			input:     "Library    Foo    WITH NAME    bar",
			wantTexts: []string{"WITH NAME"},
		},
		{
			name:  "lowercase with name",
			r:     byName(t, settings, "setting-with-name"),
			input: "Library    Foo    with name    bar",
		},
		{
			name:      "bracketed setting",
			r:         byName(t, elements, "element-setup"),
			input:     "    [Setup]    Log",
			wantTexts: []string{"[Setup]"},
			wantTypes: []ContextType{ContextElementSetup},
		},
		{
			name:      "bracketed alias",
			r:         byName(t, elements, "element-teardown"),
			input:     "| | [postcondition] | Close |",
			wantTexts: []string{"[postcondition]"},
		},
	})
}

func TestSeparatorRecognizers(t *testing.T) {
	runRecognizeCases(t, []recognizeCase{
		{
			name:      "double space",
			r:         NewTabOrDoubleSpaceSeparatorRecognizer(),
			input:     "Log    a",
			wantTexts: []string{"    "},
			wantTypes: []ContextType{ContextTabOrDoubleSpaceSeparator},
		},
		{
			name:      "separator and pretty align",
			r:         NewTabOrDoubleSpaceSeparatorRecognizer(),
			input:     "Log \t  a",
			wantTexts: []string{" \t", "  "},
			wantTypes: []ContextType{ContextTabOrDoubleSpaceSeparator, ContextPrettyAlign},
		},
		{
			name:  "single space is no separator",
			r:     NewTabOrDoubleSpaceSeparatorRecognizer(),
			input: "Log a",
		},
		{
			name:  "plain recognizer ignores pipe lines",
			r:     NewTabOrDoubleSpaceSeparatorRecognizer(),
			input: "| Log  | a |",
		},
		{
			name:      "pipe line",
			r:         NewPipeSeparatorRecognizer(),
			input:     "| a | b |",
			wantTexts: []string{"|", " ", " ", "|", " ", " ", "|"},
			wantTypes: []ContextType{
				ContextPipeSeparator, ContextPrettyAlign, ContextPrettyAlign,
				ContextPipeSeparator, ContextPrettyAlign, ContextPrettyAlign,
				ContextPipeSeparator,
			},
		},
		{
			name:  "pipe recognizer ignores plain lines",
			r:     NewPipeSeparatorRecognizer(),
			input: "Log    a",
		},
		{
			name:      "tsv",
			r:         NewTsvSeparatorRecognizer(),
			input:     "a\t\tb",
			wantTexts: []string{"\t", "\t"},
			wantTypes: []ContextType{ContextTsvSeparator, ContextTsvSeparator},
		},
	})
}

func TestCommentRecognizers(t *testing.T) {
	runRecognizeCases(t, []recognizeCase{
		{
			name:      "hash comment",
			r:         NewHashCommentRecognizer(token.FormatTxt),
			input:     "Log    a    # note here",
			wantTexts: []string{"# note here"},
			wantTypes: []ContextType{ContextDeclaredComment},
		},
		{
			name:      "full line comment",
			r:         NewHashCommentRecognizer(token.FormatTxt),
			input:     "# just a note",
			wantTexts: []string{"# just a note"},
		},
		{
			name:  "escaped hash",
			r:     NewHashCommentRecognizer(token.FormatTxt),
			input: `Log    \# no`,
		},
		{
			name:  "hash inside a cell",
			r:     NewHashCommentRecognizer(token.FormatTxt),
			input: "a#b    c",
		},
		{
			name:      "comment keyword",
			r:         NewCommentKeywordRecognizer(token.FormatTxt),
			input:     "    Comment    a  b",
			wantTexts: []string{"Comment    a  b"},
			wantTypes: []ContextType{ContextCommentKeyword},
		},
	})
}

func TestForLoopHeaderRecognizer(t *testing.T) {
	r := NewForLoopHeaderRecognizer(token.FormatTxt)
	runRecognizeCases(t, []recognizeCase{
		{
			name:      "old style range",
			r:         r,
			input:     ":FOR    ${i}    IN RANGE    10",
			wantTexts: []string{":FOR    ${i}    IN RANGE"},
			wantTypes: []ContextType{ContextForLoopHeader},
		},
		{
			name:      "new style",
			r:         r,
			input:     "    FOR    ${x}    IN    @{list}",
			wantTexts: []string{"FOR    ${x}    IN"},
		},
		{
			name:      "range in its own cell",
			r:         r,
			input:     "FOR    ${x}    IN    RANGE    3",
			wantTexts: []string{"FOR    ${x}    IN    RANGE"},
		},
		{
			name:      "spaced marker and two variables",
			r:         r,
			input:     ": FOR    ${a}    ${b}    IN    x",
			wantTexts: []string{": FOR    ${a}    ${b}    IN"},
		},
		{name: "missing in", r: r, input: "FOR    ${x}"},
		{name: "plain word variable", r: r, input: ":FOR    x    IN    a"},
		{name: "lowercase marker without colon", r: r, input: "for    ${x}    IN    a"},
	})
}

func TestCellRecognizers(t *testing.T) {
	runRecognizeCases(t, []recognizeCase{
		{
			name:      "continuation",
			r:         NewContinuationRecognizer(token.FormatTxt),
			input:     "    ...    arg",
			wantTexts: []string{"..."},
			wantTypes: []ContextType{ContextContinuation},
		},
		{
			name:      "continuation after empty cell",
			r:         NewContinuationRecognizer(token.FormatTxt),
			input:     `\    ...    arg`,
			wantTexts: []string{"..."},
		},
		{
			name:  "continuation only at row start",
			r:     NewContinuationRecognizer(token.FormatTxt),
			input: "a    ...",
		},
		{
			name:      "empty cell",
			r:         NewEmptyCellRecognizer(token.FormatTxt),
			input:     `Log    \    b`,
			wantTexts: []string{`\`},
			wantTypes: []ContextType{ContextEmptyCell},
		},
		{
			name:      "escapes",
			r:         NewEscapedRecognizer(token.FormatTxt),
			input:     `Log    a\nb    \x41    \u00e4    \`,
			wantTexts: []string{`\nb`, `\x41`, `\u00e4`},
			wantTypes: []ContextType{ContextEscapedCharacter, ContextEscapedHexValue, ContextEscapedHexValue},
		},
		{
			name:      "escaped trailing space",
			r:         NewEscapedRecognizer(token.FormatTxt),
			input:     `a\     b`,
			wantTexts: []string{`\ `},
			wantTypes: []ContextType{ContextEscapedCharacter},
		},
		{
			name:      "quoted sentence",
			r:         NewQuotedSentenceRecognizer(),
			input:     `Log    "hello world"    "x`,
			wantTexts: []string{`"hello world"`},
			wantTypes: []ContextType{ContextQuotedSentence},
		},
	})
}

func TestSet_RecognizeLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []ContextType
	}{
		{
			name:  "undeclared text",
			input: "just some words",
			want:  []ContextType{ContextUndeclared},
		},
		{
			name:  "blank line",
			input: "",
		},
		{
			name:  "layout only keeps undeclared",
			input: "a    b",
			want:  []ContextType{ContextUndeclared, ContextTabOrDoubleSpaceSeparator},
		},
		{
			name:  "keyword call with variable",
			input: "Log    ${x}",
			want:  []ContextType{ContextTabOrDoubleSpaceSeparator, ContextScalarVariable},
		},
		{
			name:  "header",
			input: "*** Test Cases ***",
			want:  []ContextType{ContextTestCasesTableHeader},
		},
	}

	set := NewSet(token.FormatTxt)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := lexer.Tokenize(tt.input)[0]
			got := types(set.RecognizeLine(line))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("RecognizeLine() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		dialect token.Dialect
		want    []SegmentKind
	}{
		{
			name:    "plain",
			input:   "a    b c",
			dialect: token.DialectSpace,
			want:    []SegmentKind{SegmentCell, SegmentSeparator, SegmentCell},
		},
		{
			name:    "empty pipe cell",
			input:   "| a |  | b |",
			dialect: token.DialectPipe,
			want: []SegmentKind{
				SegmentSeparator, SegmentPrettyAlign, SegmentCell, SegmentPrettyAlign,
				SegmentSeparator, SegmentPrettyAlign, SegmentSeparator, SegmentPrettyAlign,
				SegmentCell, SegmentPrettyAlign, SegmentSeparator,
			},
		},
		{
			name:    "empty tsv cell",
			input:   "a\t\tb",
			dialect: token.DialectTsv,
			want:    []SegmentKind{SegmentCell, SegmentSeparator, SegmentSeparator, SegmentCell},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := lexer.Tokenize(tt.input)[0]
			var got []SegmentKind
			for _, s := range Segments(line, tt.dialect) {
				got = append(got, s.Kind)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
