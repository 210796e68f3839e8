// Package history tracks processed files and answered questions across runs.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yma-ai/yma/internal/textnorm"
)

// ProcessedFile is one ingested upload, identified by its content hash so an
// identical re-upload can be skipped.
type ProcessedFile struct {
	FileName    string
	ContentHash string
	IngestedAt  time.Time
}

// ReasoningRecord is the persisted trace of one answered question.
type ReasoningRecord struct {
	ID             string    `json:"id"`
	FileName       string    `json:"file"`
	NormalizedFile string    `json:"normalized_file"`
	Prompt         string    `json:"prompt"`
	Answer         string    `json:"reasoning"`
	Sources        []string  `json:"sources_used"`
	Timestamp      time.Time `json:"timestamp"`
}

// Store persists processed-file records in SQLite and reasoning records as
// JSON files in a directory.
type Store struct {
	db           *sql.DB
	reasoningDir string
}

const schema = `
CREATE TABLE IF NOT EXISTS processed_files (
    file_name TEXT PRIMARY KEY,
    content_hash TEXT NOT NULL,
    ingested_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_processed_hash ON processed_files(content_hash);
`

// Open creates or opens the history database at path and ensures the
// reasoning directory exists.
func Open(path, reasoningDir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	if err := os.MkdirAll(reasoningDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reasoning directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}

	s := &Store{db: sqlDB, reasoningDir: reasoningDir}
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory history store (useful for testing).
// Reasoning records are written to reasoningDir.
func OpenMemory(reasoningDir string) (*Store, error) {
	if err := os.MkdirAll(reasoningDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating reasoning directory: %w", err)
	}
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Each connection gets its own in-memory database.
	sqlDB.SetMaxOpenConns(1)
	s := &Store{db: sqlDB, reasoningDir: reasoningDir}
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Seen reports whether a file with this content hash was already ingested.
func (s *Store) Seen(contentHash string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM processed_files WHERE content_hash = ?`, contentHash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying processed files: %w", err)
	}
	return n > 0, nil
}

// Add records a processed file. Re-adding the same file name updates its
// content hash and timestamp.
func (s *Store) Add(fileName, contentHash string) error {
	_, err := s.db.Exec(`
		INSERT INTO processed_files (file_name, content_hash, ingested_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(file_name) DO UPDATE SET
			content_hash = excluded.content_hash,
			ingested_at = excluded.ingested_at`,
		fileName, contentHash)
	if err != nil {
		return fmt.Errorf("recording processed file %s: %w", fileName, err)
	}
	return nil
}

// Remove deletes the processed-file record for fileName, so the file can be
// re-ingested after its index records were dropped.
func (s *Store) Remove(fileName string) error {
	if _, err := s.db.Exec(`DELETE FROM processed_files WHERE file_name = ?`, fileName); err != nil {
		return fmt.Errorf("removing %s from history: %w", fileName, err)
	}
	return nil
}

// List returns all processed files, oldest first.
func (s *Store) List() ([]ProcessedFile, error) {
	rows, err := s.db.Query(`SELECT file_name, content_hash, ingested_at FROM processed_files ORDER BY ingested_at, file_name`)
	if err != nil {
		return nil, fmt.Errorf("listing processed files: %w", err)
	}
	defer rows.Close()

	var files []ProcessedFile
	for rows.Next() {
		var f ProcessedFile
		var ts string
		if err := rows.Scan(&f.FileName, &f.ContentHash, &ts); err != nil {
			return nil, fmt.Errorf("scanning processed file: %w", err)
		}
		if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
			f.IngestedAt = t
		} else if t, parseErr := time.Parse(time.RFC3339, ts); parseErr == nil {
			f.IngestedAt = t
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// SaveReasoning writes a reasoning record as a JSON file and returns its
// path. A missing ID or timestamp is filled in.
func (s *Store) SaveReasoning(rec ReasoningRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.NormalizedFile = textnorm.Filename(rec.FileName)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling reasoning record: %w", err)
	}

	name := fmt.Sprintf("reasoning_%s_%s.json", rec.NormalizedFile, rec.ID[:8])
	path := filepath.Join(s.reasoningDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing reasoning record: %w", err)
	}
	return path, nil
}

// Reset deletes all processed-file rows and all reasoning records. It stops
// at the first failure so the caller can report what was and was not
// cleared.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(`DELETE FROM processed_files`); err != nil {
		return fmt.Errorf("clearing processed files: %w", err)
	}
	if err := os.RemoveAll(s.reasoningDir); err != nil {
		return fmt.Errorf("removing reasoning records: %w", err)
	}
	if err := os.MkdirAll(s.reasoningDir, 0o755); err != nil {
		return fmt.Errorf("recreating reasoning directory: %w", err)
	}
	return nil
}
