package cache

import (
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c := New[int](Config{MaxItems: 10})
	defer c.Close()

	if _, ok := c.Get("a"); ok {
		t.Error("Get() on empty cache found a value")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get() = %v, %v, want 1, true", v, ok)
	}
	c.Delete("a")
	if c.Size() != 0 {
		t.Errorf("Size() = %d, want 0", c.Size())
	}

	hits, misses, rate := c.Stats()
	if hits != 1 || misses != 1 || rate != 50 {
		t.Errorf("Stats() = %d, %d, %v, want 1, 1, 50", hits, misses, rate)
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New[string](Config{MaxItems: 10})
	defer c.Close()

	c.SetWithTTL("short", "x", time.Millisecond)
	c.Set("forever", "y")
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("Get() returned an expired entry")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("Get() lost an entry without TTL")
	}

	c.SetWithTTL("short", "x", time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	c.cleanup()
	if c.Size() != 1 {
		t.Errorf("Size() after cleanup = %d, want 1", c.Size())
	}
}

func TestCache_Evict(t *testing.T) {
	c := New[int](Config{MaxItems: 2, TTL: time.Hour})
	defer c.Close()

	c.SetWithTTL("first", 1, time.Minute)
	c.Set("second", 2)
	c.Set("second", 3)
	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
	c.Set("third", 4)
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("entry expiring first was not evicted")
	}
}

func TestCache_CloseTwice(t *testing.T) {
	c := New[int](DefaultConfig())
	c.Close()
	c.Close()
}

func TestDigestCache_Changed(t *testing.T) {
	d := NewDigestCache(Config{})
	defer d.Close()

	tests := []struct {
		name string
		path string
		data string
		want bool
	}{
		{"first sight", "a.robot", "x", true},
		{"same content", "a.robot", "x", false},
		{"new content", "a.robot", "y", true},
		{"other file", "b.robot", "y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Changed(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("Changed(%s, %q) = %v, want %v", tt.path, tt.data, got, tt.want)
			}
		})
	}

	d.Forget("a.robot")
	if !d.Changed("a.robot", []byte("y")) {
		t.Error("Changed() after Forget() = false, want true")
	}
}

func TestDigest(t *testing.T) {
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Digest(nil); got != empty {
		t.Errorf("Digest(nil) = %s, want %s", got, empty)
	}
}
