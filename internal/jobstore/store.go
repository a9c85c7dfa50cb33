package jobstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"avreap/internal/job"
)

// Store persists job records as JSON files in dir, one file per job named
// "<id>.json".
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open returns a Store rooted at dir, creating dir if it does not exist.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("job state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create job state directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// NewID mints a fresh opaque job identifier. Called once, at PROBING entry.
func NewID() string {
	return uuid.NewString()
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save persists rec atomically: write to a temp file in the same directory,
// fsync it, then rename over the target. A reader never observes a
// partially written record.
func (s *Store) Save(rec *job.Record) error {
	if rec == nil || rec.ID == "" {
		return errors.New("job record requires an id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal job record: %w", err)
	}

	target := s.path(rec.ID)
	tmp, err := os.CreateTemp(s.dir, rec.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp record file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fsync temp record file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp record file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("rename record file: %w", err)
	}
	return nil
}

// Load reads a single job record by id.
func (s *Store) Load(id string) (*job.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, err
	}
	var rec job.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse job record %s: %w", id, err)
	}
	return &rec, nil
}

// LoadAll reads every job record in the store, sorted by CreatedAt. Files
// that fail to parse are skipped rather than failing the whole load,
// since a half-written record from a previous crash should never block
// startup.
func (s *Store) LoadAll() ([]*job.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read job state directory: %w", err)
	}

	records := make([]*job.Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, readErr := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if readErr != nil {
			continue
		}
		var rec job.Record
		if jsonErr := json.Unmarshal(data, &rec); jsonErr != nil {
			continue
		}
		records = append(records, &rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes a job record file. Missing files are not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete job record %s: %w", id, err)
	}
	return nil
}

// FindBySourcePath returns the most recently created non-terminal record
// for sourcePath, or nil when there is none. The scanner and scheduler do
// not call it.
func (s *Store) FindBySourcePath(sourcePath string) (*job.Record, error) {
	records, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	var found *job.Record
	for _, rec := range records {
		if rec.SourcePath != sourcePath {
			continue
		}
		if job.IsTerminal(rec.Status) {
			continue
		}
		if found == nil || rec.CreatedAt.After(found.CreatedAt) {
			found = rec
		}
	}
	return found, nil
}
