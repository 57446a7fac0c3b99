package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"overlay-window/geom"
	"overlay-window/log"
)

const StateFileName = "state.json"

// State represents the overlay state that persists between sessions. It
// implements engine.Persistence.
type State struct {
	// LastPosition is the last settled overlay center.
	LastPosition *geom.Point `json:"last_position,omitempty"`
	// LastSize is the last committed overlay size.
	LastSize *geom.Size `json:"last_size,omitempty"`

	mu sync.Mutex
}

// DefaultState returns the default state
func DefaultState() *State {
	return &State{}
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
// This function acquires a shared lock to allow concurrent reads.
func LoadState() *State {
	statePath, err := statePath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}

	lock := NewFileLock(statePath)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to get state file: %v", err)
		}
		return DefaultState()
	}

	state := DefaultState()
	if err := json.Unmarshal(data, state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return DefaultState()
	}
	return state
}

// SaveState saves the state to disk.
// This function acquires an exclusive lock to prevent concurrent writes.
func SaveState(state *State) error {
	statePath, err := statePath()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(statePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := NewFileLock(statePath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return os.WriteFile(statePath, data, 0644)
}

func statePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadLastPosition returns the last settled position, if any.
func (s *State) LoadLastPosition() (geom.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LastPosition == nil {
		return geom.Point{}, false
	}
	return *s.LastPosition, true
}

// SaveLastPosition records p and writes the state file.
func (s *State) SaveLastPosition(p geom.Point) error {
	s.mu.Lock()
	s.LastPosition = &p
	s.mu.Unlock()
	return SaveState(s)
}

// LoadLastSize returns the last committed size, if any.
func (s *State) LoadLastSize() (geom.Size, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LastSize == nil {
		return geom.Size{}, false
	}
	return *s.LastSize, true
}

// SaveLastSize records size and writes the state file.
func (s *State) SaveLastSize(size geom.Size) error {
	s.mu.Lock()
	s.LastSize = &size
	s.mu.Unlock()
	return SaveState(s)
}

// Reset forgets the saved position and size.
func (s *State) Reset() error {
	s.mu.Lock()
	s.LastPosition = nil
	s.LastSize = nil
	s.mu.Unlock()
	return SaveState(s)
}
