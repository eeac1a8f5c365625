package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_Matches(t *testing.T) {
	w := New(t.TempDir(), nil, Options{})
	tests := []struct {
		path string
		want bool
	}{
		{"suite.robot", true},
		{"data/SUITE.TSV", true},
		{"notes.txt", true},
		{"readme.md", false},
		{"robot", false},
	}
	for _, tt := range tests {
		if got := w.Matches(tt.path); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}

	only := New(t.TempDir(), nil, Options{Extensions: []string{".robot"}})
	if only.Matches("a.tsv") {
		t.Error("Matches(a.tsv) = true with .robot only")
	}
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no event within 5s")
		return Event{}
	}
}

func TestWatcher_Events(t *testing.T) {
	dir := t.TempDir()
	events := make(chan Event, 16)
	w := New(dir, func(ctx context.Context, ev Event) error {
		events <- ev
		return nil
	}, Options{Debounce: 50 * time.Millisecond})

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if err := w.Start(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Start() error = %v, want ErrRunning", err)
	}

	// ignored extension
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "suite.robot")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("*** Settings ***\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	ev := waitEvent(t, events)
	if ev.Path != path || ev.Op != OpChanged {
		t.Errorf("event = %+v, want changed %s", ev, path)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	ev = waitEvent(t, events)
	if ev.Path != path || ev.Op != OpRemoved {
		t.Errorf("event = %+v, want removed %s", ev, path)
	}

	select {
	case extra := <-events:
		t.Errorf("unexpected event %+v", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopAndCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := New(t.TempDir(), func(context.Context, Event) error { return nil }, Options{})

	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// wait until the loop runs
	deadline := time.Now().Add(5 * time.Second)
	for w.Done() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	// Stop after the loop ended is a no-op
	w.Stop()
}

func TestWatcher_MissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), nil, Options{})
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Error("Start() on missing dir error = nil")
	}
}

func TestOp_String(t *testing.T) {
	if OpChanged.String() != "changed" || OpRemoved.String() != "removed" {
		t.Errorf("Op strings = %q, %q", OpChanged, OpRemoved)
	}
}
