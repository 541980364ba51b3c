package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// DefaultStatePath is where resumable progress lives unless overridden.
const DefaultStatePath = "~/.journalviz/batch-state.json"

// State tracks progress for resumable batch runs.
type State struct {
	StartedAt       time.Time      `json:"started_at"`
	LastProcessedAt time.Time      `json:"last_processed_at"`
	FilesProcessed  []string       `json:"files_processed"`
	FilesRemaining  int            `json:"files_remaining"`
	Rendered        int            `json:"rendered"`
	ByMode          map[string]int `json:"by_mode,omitempty"`
	Errors          []string       `json:"errors"`

	mu   sync.Mutex
	path string // not serialized
}

// LoadState reads the state file at path, or starts a fresh one when the
// file does not exist yet. An empty path keeps state in memory only.
func LoadState(path string) (*State, error) {
	if path == "" {
		return &State{StartedAt: time.Now().UTC()}, nil
	}
	p := expandHome(path)

	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{
				StartedAt: time.Now().UTC(),
				path:      p,
			}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	s.path = p
	return &s, nil
}

// Path returns the resolved state file location.
func (s *State) Path() string { return s.path }

// Save persists the state to disk. It is a no-op for in-memory state.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.LastProcessedAt = time.Now().UTC()
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	return os.WriteFile(s.path, data, 0o644)
}

// IsProcessed returns true if the given entry has already been rendered.
func (s *State) IsProcessed(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.FilesProcessed, path)
}

// MarkProcessed records an entry as rendered in the given mode.
func (s *State) MarkProcessed(path, mode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FilesProcessed = append(s.FilesProcessed, path)
	s.Rendered++
	if s.FilesRemaining > 0 {
		s.FilesRemaining--
	}
	if s.ByMode == nil {
		s.ByMode = make(map[string]int)
	}
	s.ByMode[mode]++
}

// AddError records a processing error.
func (s *State) AddError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, msg)
}

func (s *State) setRemaining(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.FilesRemaining = n
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
