package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/tabwerk/internal/robot/lexer"
	"github.com/msto63/tabwerk/internal/robot/section"
	"github.com/msto63/tabwerk/internal/robot/token"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "sub", "index.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sectionsOf(t *testing.T, src string) []*section.Section {
	t.Helper()
	roots, _, err := section.BuildLines(lexer.Tokenize(src), token.FormatTxt)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	return roots
}

const suite = "*** Settings ***\nLibrary    OS\n*** Keywords ***\nKw\n    Log    x\n"

func TestFlatten(t *testing.T) {
	got := Flatten(sectionsOf(t, suite))
	want := []struct {
		typ    string
		parent int
		depth  int
	}{
		{"SETTINGS", -1, 0},
		{"SETTING", 0, 1},
		{"KEYWORDS", -1, 0},
		{"KEYWORD", 2, 1},
		{"KEYWORD_ROW", 3, 2},
	}
	if len(got) != len(want) {
		t.Fatalf("Flatten() = %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Ordinal != i || got[i].Type != w.typ || got[i].Parent != w.parent || got[i].Depth != w.depth {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], w)
		}
	}
	if got[1].StartLine != 2 {
		t.Errorf("SETTING StartLine = %d, want 2", got[1].StartLine)
	}
}

func TestSQLiteStore_IndexFile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	roots := sectionsOf(t, suite)

	runID, err := s.IndexFile(ctx, "suite.robot", "txt", roots)
	if err != nil {
		t.Fatalf("IndexFile() error = %v", err)
	}
	if runID == "" {
		t.Error("IndexFile() returned empty run id")
	}

	got, err := s.Sections(ctx, "suite.robot")
	if err != nil {
		t.Fatalf("Sections() error = %v", err)
	}
	if diff := cmp.Diff(Flatten(roots), got); diff != "" {
		t.Errorf("Sections() mismatch (-want +got):\n%s", diff)
	}

	// indexing again replaces the rows
	second, err := s.IndexFile(ctx, "suite.robot", "txt", roots[:1])
	if err != nil {
		t.Fatalf("IndexFile() again error = %v", err)
	}
	if second == runID {
		t.Error("run ids repeat")
	}
	got, _ = s.Sections(ctx, "suite.robot")
	if len(got) != 2 {
		t.Errorf("Sections() after reindex = %d, want 2", len(got))
	}

	files, err := s.Files(ctx)
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	if len(files) != 1 || files[0].Path != "suite.robot" || files[0].Sections != 2 || files[0].RunID != second {
		t.Errorf("Files() = %+v", files)
	}
}

func TestSQLiteStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, p := range []string{"a.robot", "b.robot"} {
		if _, err := s.IndexFile(ctx, p, "txt", sectionsOf(t, suite)); err != nil {
			t.Fatalf("IndexFile(%s) error = %v", p, err)
		}
	}
	if err := s.Remove(ctx, "a.robot"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	files, _ := s.Files(ctx)
	if len(files) != 1 || files[0].Path != "b.robot" {
		t.Errorf("Files() = %+v, want only b.robot", files)
	}
	got, _ := s.Sections(ctx, "a.robot")
	if len(got) != 0 {
		t.Errorf("Sections(a.robot) = %d entries after Remove", len(got))
	}
	if err := s.Vacuum(ctx); err != nil {
		t.Errorf("Vacuum() error = %v", err)
	}
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.IndexFile(ctx, "", "txt", nil); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("IndexFile() error = %v, want ErrEmptyPath", err)
	}
	if _, err := s.Sections(ctx, ""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("Sections() error = %v, want ErrEmptyPath", err)
	}
	if err := s.Remove(ctx, ""); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("Remove() error = %v, want ErrEmptyPath", err)
	}
	if _, err := NewSQLiteStore(Config{}); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("NewSQLiteStore() error = %v, want ErrEmptyPath", err)
	}
}
