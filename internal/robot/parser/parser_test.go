package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/msto63/tabwerk/internal/robot/model"
	"github.com/msto63/tabwerk/internal/robot/token"
)

func mustParse(t *testing.T, name, src string) *model.File {
	t.Helper()
	f, err := Parse(name, src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

func raws(ts []*model.Token) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Raw())
	}
	return out
}

func kindsOf(es []*model.Element) []model.ElementKind {
	out := make([]model.ElementKind, 0, len(es))
	for _, e := range es {
		out = append(out, e.Kind)
	}
	return out
}

func TestParse_KeepsSourceLines(t *testing.T) {
	inputs := map[string]string{
		"plain.robot": "*** Settings ***\nLibrary    OS\n\n*** Test Cases ***\nT\n    Log    x\n",
		"crlf.robot":  "*** Variables ***\r\n${a}    1\r\n",
		"noeol.robot": "*** Keywords ***\nKw\n    No Operation",
		"pipe.robot":  "| *** Test Cases *** |\n| T | Log | | x |\n",
		"suite.tsv":   "*Settings*\nLibrary\tOS\n\n*Test Cases*\nT\tLog\tx\n",
		"trash.robot": "free text\n\n*** Notes ***\nsome    notes\n",
	}
	for name, src := range inputs {
		t.Run(name, func(t *testing.T) {
			f := mustParse(t, name, src)
			var sb strings.Builder
			for _, l := range f.Lines {
				sb.WriteString(l.Raw())
			}
			if got := sb.String(); got != src {
				t.Errorf("lines = %q, want %q", got, src)
			}
		})
	}
}

func TestParse_Format(t *testing.T) {
	if f := mustParse(t, "a.tsv", "*Settings*\n"); f.Format != token.FormatTsv {
		t.Errorf("Format = %v, want tsv", f.Format)
	}
	if f := mustParse(t, "a.robot", "*** Settings ***\r\n"); f.EOL != "\r\n" {
		t.Errorf("EOL = %q, want CRLF", f.EOL)
	}
}

func TestParse_Settings(t *testing.T) {
	f := mustParse(t, "s.robot", "*** Settings ***\n"+
		"Library    OperatingSystem\n"+
		"Resource    common.robot\n"+
		"Metadata    Version    1.0\n"+
		"Documentation    Library\n"+
		"Frobnicate    x\n")

	want := []model.ElementKind{
		model.KindLibrary,
		model.KindResource,
		model.KindMetadata,
		model.KindDocumentation,
		model.KindUnknownSetting,
	}
	if diff := cmp.Diff(want, kindsOf(f.Settings.Elements)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(f.Settings.Imports) != 2 || len(f.Settings.Metadata) != 1 {
		t.Errorf("sub-lists = %d imports, %d metadata", len(f.Settings.Imports), len(f.Settings.Metadata))
	}

	doc := f.Settings.Elements[3]
	if doc.Declaration.Raw() != "Documentation" {
		t.Errorf("Declaration = %q", doc.Declaration.Raw())
	}
	if diff := cmp.Diff([]string{"Library"}, raws(doc.Arguments)); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
	if doc.Arguments[0].Type != model.TypeArgument {
		t.Errorf("argument type = %v", doc.Arguments[0].Type)
	}
}

func TestParse_IndentedSetting(t *testing.T) {
	f := mustParse(t, "s.robot", "*** Settings ***\n"+
		"Library    OperatingSystem\n"+
		"    Resource    common.robot\n")

	want := []model.ElementKind{model.KindLibrary, model.KindUnknownSetting}
	if diff := cmp.Diff(want, kindsOf(f.Settings.Elements)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if len(f.Settings.Imports) != 1 {
		t.Errorf("imports = %d, want 1", len(f.Settings.Imports))
	}
}

func TestParse_HeaderColumns(t *testing.T) {
	f := mustParse(t, "t.robot", "*** Test Cases ***    Action    Argument    # cols\nT\n    Log    x\n")
	if len(f.TestCases.Headers) != 1 {
		t.Fatalf("headers = %d, want 1", len(f.TestCases.Headers))
	}
	h := f.TestCases.Headers[0]
	if h.Declaration.Raw() != "*** Test Cases ***" || h.Declaration.Type != model.TypeHeader {
		t.Errorf("Declaration = %v", h.Declaration)
	}
	if diff := cmp.Diff([]string{"Action", "Argument"}, raws(h.Columns)); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"# cols"}, raws(h.Comment)); diff != "" {
		t.Errorf("comment mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Variables(t *testing.T) {
	f := mustParse(t, "v.robot", "*** Variables ***\n"+
		"${a}    1\n"+
		"@{l}    x    y\n"+
		"&{d}    k=v\n"+
		"# ${c}    3\n")

	want := []model.ElementKind{
		model.KindScalarVariable,
		model.KindListVariable,
		model.KindDictionaryVariable,
		model.KindUnknownVariable,
	}
	if diff := cmp.Diff(want, kindsOf(f.Variables.Elements)); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}

	list := f.Variables.Elements[1]
	if diff := cmp.Diff([]string{"x", "y"}, raws(list.Arguments)); diff != "" {
		t.Errorf("list arguments mismatch (-want +got):\n%s", diff)
	}

	commented := f.Variables.Elements[3]
	if commented.Declaration != nil {
		t.Errorf("commented variable Declaration = %v, want nil", commented.Declaration)
	}
	if len(commented.Comment) == 0 || commented.Comment[0].Raw() != "# ${c}" {
		t.Errorf("commented variable Comment = %v", raws(commented.Comment))
	}
}

func TestParse_Blocks(t *testing.T) {
	f := mustParse(t, "k.robot", "*** Keywords ***\n"+
		"My Keyword    [Arguments]    ${a}\n"+
		"    Log    ${a}    # note\n"+
		"    ...    more\n"+
		"\n"+
		"Other\n"+
		"    [Documentation]    Does nothing\n"+
		"    No Operation\n")

	if len(f.Keywords.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(f.Keywords.Blocks))
	}
	kw := f.Keywords.Find("my keyword")
	if kw == nil {
		t.Fatal("Find(my keyword) = nil")
	}
	if kw.Name.Type != model.TypeName {
		t.Errorf("name type = %v", kw.Name.Type)
	}

	wantKinds := []model.ElementKind{model.KindBodyArguments, model.KindRow}
	if diff := cmp.Diff(wantKinds, kindsOf(kw.Body)); diff != "" {
		t.Errorf("body kinds mismatch (-want +got):\n%s", diff)
	}
	row := kw.Body[1]
	if row.Declaration.Raw() != "Log" || row.Declaration.Type != model.TypeAction {
		t.Errorf("row Declaration = %v", row.Declaration)
	}
	if diff := cmp.Diff([]string{"${a}", "more"}, raws(row.Arguments)); diff != "" {
		t.Errorf("row arguments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"# note"}, raws(row.Comment)); diff != "" {
		t.Errorf("row comment mismatch (-want +got):\n%s", diff)
	}

	other := f.Keywords.Blocks[1]
	if len(other.Settings()) != 1 || len(other.Rows()) != 1 {
		t.Errorf("Other: %d settings, %d rows", len(other.Settings()), len(other.Rows()))
	}
	if other.Settings()[0].Kind != model.KindBodyDocumentation {
		t.Errorf("Other setting kind = %v", other.Settings()[0].Kind)
	}
}

func TestParse_PipeEmptyCell(t *testing.T) {
	f := mustParse(t, "p.robot", "| *** Test Cases *** |\n| T | Log | | x |\n")
	if len(f.TestCases.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(f.TestCases.Blocks))
	}
	b := f.TestCases.Blocks[0]
	if b.Name.Raw() != "T" || len(b.Body) != 1 {
		t.Fatalf("block = %q with %d rows", b.Name.Raw(), len(b.Body))
	}
	row := b.Body[0]
	if row.Declaration.Raw() != "Log" {
		t.Errorf("Declaration = %q", row.Declaration.Raw())
	}
	if diff := cmp.Diff([]string{"", "x"}, raws(row.Arguments)); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_UserTable(t *testing.T) {
	f := mustParse(t, "u.robot", "*** Comments ***\nanything\n*** Settings ***\nLibrary    OS\n")
	if len(f.UserTables) != 1 {
		t.Fatalf("user tables = %d, want 1", len(f.UserTables))
	}
	if got := f.UserTables[0].Span; got.Start != 0 || got.End != 2 {
		t.Errorf("user table span = %v, want 0-2", got)
	}
	if len(f.Settings.Elements) != 1 {
		t.Errorf("settings = %d, want 1", len(f.Settings.Elements))
	}
}

func TestParse_Clean(t *testing.T) {
	f := mustParse(t, "c.robot", "*** Settings ***\nLibrary    OS\n*** Test Cases ***\nT\n    Log    x\n")

	lib := f.Settings.Elements[0]
	if lib.IsNew() || lib.IsDirty() {
		t.Errorf("parsed setting new=%v dirty=%v", lib.IsNew(), lib.IsDirty())
	}
	b := f.TestCases.Blocks[0]
	if b.IsDirty() {
		t.Error("parsed block is dirty")
	}

	b.Body[0].Arguments[0].SetText("y")
	if !b.IsDirty() || !b.Body[0].IsDirty() {
		t.Error("changed row not dirty")
	}
	if lib.IsDirty() {
		t.Error("unchanged setting became dirty")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.robot")
	if err := os.WriteFile(path, []byte("*** Variables ***\n${a}    1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(f.Variables.Elements) != 1 {
		t.Errorf("variables = %d, want 1", len(f.Variables.Elements))
	}

	if _, err := ParseFile(filepath.Join(t.TempDir(), "missing.robot")); err == nil {
		t.Error("ParseFile(missing) error = nil")
	}
}

func TestAnalyze(t *testing.T) {
	a, err := New(Options{}).Analyze("a.robot", "*** Settings ***\nLibrary    OS\n")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(a.Lines) != 3 || len(a.Contexts) != 3 {
		t.Errorf("lines = %d, contexts = %d, want 3", len(a.Lines), len(a.Contexts))
	}
	if diff := cmp.Diff(1, len(a.Sections), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}
