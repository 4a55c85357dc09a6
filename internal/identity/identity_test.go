package identity

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestNormalize(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims and lowers", in: "  Hello World \t", want: "hello world"},
		{name: "keeps inner whitespace", in: "a   b", want: "a   b"},
		{name: "keeps punctuation", in: "Don't Stop (Live)", want: "don't stop (live)"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeyOf(t *testing.T) {
	t.Run("case and whitespace insensitive", func(t *testing.T) {
		a := KeyOf(" Song ", "Artist")
		b := KeyOf("song", " ARTIST ")
		if a != "song - artist" {
			t.Errorf("unexpected key %q", a)
		}
		if a != b {
			t.Errorf("expected equal keys, got %q and %q", a, b)
		}
	})

	t.Run("missing artist", func(t *testing.T) {
		if got := KeyOf("Song", ""); got != "song - " {
			t.Errorf("unexpected key %q", got)
		}
	})

	t.Run("distinct songs", func(t *testing.T) {
		if KeyOf("Song", "A") == KeyOf("Song (Remix)", "A") {
			t.Error("expected different keys for different titles")
		}
	})
}

func TestKeySet(t *testing.T) {
	t.Run("seeded keys are present", func(t *testing.T) {
		s := NewKeySet(0, KeyOf("A", "X"), KeyOf("B", "Y"))
		if !s.Has("a - x") || !s.Has("b - y") {
			t.Error("expected seeded keys")
		}
		if s.Has("c - z") {
			t.Error("unexpected key")
		}
		if s.Len() != 2 {
			t.Errorf("expected 2 keys, got %d", s.Len())
		}
	})

	t.Run("insert is idempotent", func(t *testing.T) {
		s := NewKeySet(4)
		s.Insert("k")
		s.Insert("k")
		if s.Len() != 1 {
			t.Errorf("expected 1 key, got %d", s.Len())
		}
	})

	t.Run("TryAdd inserts after successful add", func(t *testing.T) {
		s := NewKeySet(4)
		calls := 0
		dup, err := s.TryAdd("k", func() error { calls++; return nil })
		if dup || err != nil {
			t.Fatalf("expected add, got dup=%v err=%v", dup, err)
		}
		dup, err = s.TryAdd("k", func() error { calls++; return nil })
		if !dup || err != nil {
			t.Fatalf("expected duplicate, got dup=%v err=%v", dup, err)
		}
		if calls != 1 {
			t.Errorf("expected add to run once, ran %d times", calls)
		}
	})

	t.Run("TryAdd failure leaves key absent", func(t *testing.T) {
		s := NewKeySet(4)
		boom := errors.New("boom")
		dup, err := s.TryAdd("k", func() error { return boom })
		if dup || !errors.Is(err, boom) {
			t.Fatalf("expected add error, got dup=%v err=%v", dup, err)
		}
		if s.Has("k") {
			t.Error("key should not be inserted after failed add")
		}
	})

	t.Run("TryAdd is exclusive under contention", func(t *testing.T) {
		s := NewKeySet(16)
		var mu sync.Mutex
		adds := map[Key]int{}

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := Key(fmt.Sprintf("song-%d", i%5))
				_, _ = s.TryAdd(key, func() error {
					mu.Lock()
					adds[key]++
					mu.Unlock()
					return nil
				})
			}(i)
		}
		wg.Wait()

		for k, n := range adds {
			if n != 1 {
				t.Errorf("key %s added %d times", k, n)
			}
		}
		if s.Len() != 5 {
			t.Errorf("expected 5 keys, got %d", s.Len())
		}
	})
}
