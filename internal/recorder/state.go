// Package recorder times solve sessions and remembers the last session's
// turn log between runs.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppState represents the persistent application state. It never holds
// puzzle state; a new puzzle always starts solved.
type AppState struct {
	LastLogPath   string `json:"last_log_path,omitempty"`
	LastSessionID string `json:"last_session_id,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// StatePath returns the state file path inside dir.
func StatePath(dir string) string {
	return filepath.Join(dir, "state.json")
}

// NewStateFile creates a new state file manager.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	// Try to load existing state
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &sf.state)
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sf.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetLastSession records the most recent turn log.
func (sf *StateFile) SetLastSession(logPath, sessionID string) error {
	sf.state.LastLogPath = logPath
	sf.state.LastSessionID = sessionID
	return sf.Save()
}

// LastLogPath returns the most recent turn log path.
func (sf *StateFile) LastLogPath() string {
	return sf.state.LastLogPath
}
