package storage

import (
	"testing"
)

func TestIndexRebuildAndSearch(t *testing.T) {
	dataDir := t.TempDir()

	store, err := NewThreadStorage(dataDir)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	thread := &Thread{Provider: "openai", Model: "gpt-4o-mini"}
	thread.Append("system", "You are helpful.")
	thread.Append("user", "Tell me about reggae music")
	thread.Append("assistant", "Reggae originated in Jamaica in the late 1960s.")
	if err := store.Save(thread); err != nil {
		t.Fatal(err)
	}

	idx, err := OpenIndex(dataDir)
	if err != nil {
		t.Fatalf("failed to open index: %v", err)
	}
	defer idx.Close()

	if err := idx.Rebuild(store); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	matches, err := idx.Search("reggae")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ThreadID != thread.ID {
		t.Errorf("thread ID = %q, want %q", matches[0].ThreadID, thread.ID)
	}
}

func TestIndexSearchExcludesSystem(t *testing.T) {
	dataDir := t.TempDir()

	store, err := NewThreadStorage(dataDir)
	if err != nil {
		t.Fatal(err)
	}

	thread := &Thread{}
	thread.Append("system", "secret instructions")
	thread.Append("user", "hello")
	if err := store.Save(thread); err != nil {
		t.Fatal(err)
	}

	idx, err := OpenIndex(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	if err := idx.Rebuild(store); err != nil {
		t.Fatal(err)
	}

	matches, err := idx.Search("secret")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("expected system messages excluded, got %d matches", len(matches))
	}
}

func TestIndexSearchEmptyQuery(t *testing.T) {
	dataDir := t.TempDir()

	idx, err := OpenIndex(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	matches, err := idx.Search("")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches for empty query, got %d", len(matches))
	}
}
