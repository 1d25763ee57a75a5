package cache

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

func TestNormalizeTopic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cell Biology", "cell-biology"},
		{"  cell   biology  ", "cell-biology"},
		{"PHOTOSYNTHESIS", "photosynthesis"},
		{"cell\tbiology\n", "cell-biology"},
	}
	for _, tt := range tests {
		if got := NormalizeTopic(tt.in); got != tt.want {
			t.Errorf("NormalizeTopic(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKey_SeparatorCollision(t *testing.T) {
	// "cell biology" and "cell-biology" share a key on purpose; the
	// kind prefix still keeps content types apart.
	if Key(KindNotes, "cell biology") != Key(KindNotes, "Cell  Biology") {
		t.Error("equivalent topics should share a key")
	}
	if Key(KindNotes, "cell biology") == Key(KindQuiz, "cell biology") {
		t.Error("different kinds must not share a key")
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewMemory())
}

func TestSQLiteRoundTrip(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	testStoreRoundTrip(t, s)
}

func TestTieredRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewTiered(NewMemory()))
}

func testStoreRoundTrip(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := Key(KindNotes, "Cell Biology")

	if _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	value := json.RawMessage(`{"notes":"# Cell Biology"}`)
	if err := s.Put(ctx, key, value); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(value) {
		t.Fatalf("got %s, want %s", got, value)
	}

	// Overwrite replaces.
	updated := json.RawMessage(`{"notes":"# Updated"}`)
	if err := s.Put(ctx, key, updated); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.Get(ctx, key)
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if string(got) != string(updated) {
		t.Fatalf("got %s, want %s", got, updated)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting a missing key is not an error.
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	key := Key(KindFlashcards, "photosynthesis")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, key, json.RawMessage(`{"cards":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if string(got) != `{"cards":[]}` {
		t.Fatalf("unexpected value after reopen: %s", got)
	}
}

func TestTieredReadThroughPopulatesHotTier(t *testing.T) {
	ctx := context.Background()
	cold := NewMemory()
	key := Key(KindQuiz, "algebra")
	if err := cold.Put(ctx, key, json.RawMessage(`{"questions":[]}`)); err != nil {
		t.Fatalf("seed cold: %v", err)
	}

	tiered := NewTiered(cold)
	if tiered.hot.Len() != 0 {
		t.Fatal("hot tier should start empty")
	}
	if _, err := tiered.Get(ctx, key); err != nil {
		t.Fatalf("get: %v", err)
	}
	if tiered.hot.Len() != 1 {
		t.Fatal("hot tier should be populated after a cold hit")
	}
}
