package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	// DefaultFileName is the history file created in the user's home directory.
	DefaultFileName = ".fibbench_history.json"

	// formatVersion is written to every file; bump it on incompatible changes.
	formatVersion = 1
)

// ErrCorrupt wraps parse failures of a history file.
var ErrCorrupt = errors.New("corrupt history file")

type fileFormat struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// DefaultPath returns ~/.fibbench_history.json, or the bare file name when
// the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Load replaces the store's entries with those in path. A missing file is an
// empty history. Entries beyond the capacity and entries that are not valid
// are dropped.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("%w %s: %w", ErrCorrupt, path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
	for _, e := range f.Entries {
		if !e.Algorithm.Valid() || e.Result == "" {
			continue
		}
		if e.Digits == 0 {
			e.Digits = len(e.Result)
		}
		s.entries = append(s.entries, e)
		if len(s.entries) == s.capacity {
			break
		}
	}
	return nil
}

// Save writes the store to path, creating parent directories.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(path)
}

func (s *Store) saveLocked(path string) error {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(fileFormat{Version: formatVersion, Entries: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// Write to a sibling file first so a crash never leaves a truncated history.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
