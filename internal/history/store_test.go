package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSeenAfterAdd(t *testing.T) {
	s := newTestStore(t)

	seen, err := s.Seen("abc123")
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if seen {
		t.Error("hash seen before any add")
	}

	if err := s.Add("paper.pdf", "abc123"); err != nil {
		t.Fatalf("add: %v", err)
	}

	seen, err = s.Seen("abc123")
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if !seen {
		t.Error("hash not seen after add")
	}
}

func TestAddSameFileUpdatesHash(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add("paper.pdf", "hash-v1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("paper.pdf", "hash-v2"); err != nil {
		t.Fatalf("re-add: %v", err)
	}

	files, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d rows, want 1", len(files))
	}
	if files[0].ContentHash != "hash-v2" {
		t.Errorf("hash not updated: %q", files[0].ContentHash)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)

	if err := s.Add("paper.pdf", "abc"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Remove("paper.pdf"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	seen, err := s.Seen("abc")
	if err != nil {
		t.Fatalf("seen: %v", err)
	}
	if seen {
		t.Error("hash still seen after remove")
	}

	// Removing an unknown file is not an error.
	if err := s.Remove("ghost.pdf"); err != nil {
		t.Errorf("remove unknown file: %v", err)
	}
}

func TestListMultipleFiles(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if err := s.Add(name, "hash-"+name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	files, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d rows, want 3", len(files))
	}
	for _, f := range files {
		if f.IngestedAt.IsZero() {
			t.Errorf("zero timestamp for %s", f.FileName)
		}
	}
}

func TestSaveReasoning(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenMemory(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	path, err := s.SaveReasoning(ReasoningRecord{
		FileName: "deep learning.pdf",
		Prompt:   "what is attention?",
		Answer:   "Attention weighs token relevance.",
		Sources:  []string{"deep learning.pdf"},
	})
	if err != nil {
		t.Fatalf("save reasoning: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "reasoning_deep_learning_pdf_") {
		t.Errorf("unexpected record name %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	var rec ReasoningRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if rec.ID == "" {
		t.Error("missing generated id")
	}
	if rec.Timestamp.IsZero() {
		t.Error("missing generated timestamp")
	}
	if rec.Prompt != "what is attention?" {
		t.Errorf("prompt round-trip failed: %q", rec.Prompt)
	}
}

func TestResetClearsRowsAndRecords(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenMemory(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	if err := s.Add("paper.pdf", "abc"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.SaveReasoning(ReasoningRecord{FileName: "paper.pdf", Prompt: "q", Answer: "a"}); err != nil {
		t.Fatalf("save reasoning: %v", err)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	files, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("processed files survived reset: %d", len(files))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read reasoning dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("reasoning records survived reset: %d", len(entries))
	}

	// The store stays usable after a reset.
	if err := s.Add("paper.pdf", "def"); err != nil {
		t.Fatalf("add after reset: %v", err)
	}
}
