package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CaseStore tracks appeals created from this client, keyed by the
// backend's appeal id. It holds local annotations the backend does not
// store: private notes and the status last seen, so the appeals view
// can flag status changes.
type CaseStore struct {
	Version   string               `json:"version"`
	UpdatedAt time.Time            `json:"updated_at"`
	Cases     map[string]CaseEntry `json:"cases"`
}

type CaseEntry struct {
	Platform       string `json:"platform"`
	LastStatus     string `json:"last_status"`
	Notes          string `json:"notes,omitempty"`
	SubmittedAt    string `json:"submitted_at,omitempty"`
	LetterCopiedAt string `json:"letter_copied_at,omitempty"`
	CreatedAt      string `json:"created_at"`
}

func GetCaseStorePath() string {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "case_store.json")
}

func LoadCaseStore() (*CaseStore, error) {
	path := GetCaseStorePath()
	if path == "" {
		return &CaseStore{Cases: make(map[string]CaseEntry)}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &CaseStore{Version: "1.0", Cases: make(map[string]CaseEntry)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read case store: %w", err)
	}

	var store CaseStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to parse case store: %w", err)
	}

	if store.Cases == nil {
		store.Cases = make(map[string]CaseEntry)
	}

	return &store, nil
}

func (s *CaseStore) Save() error {
	path := GetCaseStorePath()
	if path == "" {
		return fmt.Errorf("cannot determine case store path")
	}

	s.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal case store: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Track records a newly generated appeal.
func (s *CaseStore) Track(id, platform, status string) {
	if s.Cases == nil {
		s.Cases = make(map[string]CaseEntry)
	}
	s.Cases[id] = CaseEntry{
		Platform:   platform,
		LastStatus: status,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
}

// SetStatus updates the last status seen for a tracked appeal and
// reports whether it changed.
func (s *CaseStore) SetStatus(id, status string) bool {
	entry, ok := s.Cases[id]
	if !ok {
		return false
	}
	changed := entry.LastStatus != status
	entry.LastStatus = status
	s.Cases[id] = entry
	return changed
}

// SetNotes replaces the private notes for a tracked appeal.
func (s *CaseStore) SetNotes(id, notes string) {
	entry, ok := s.Cases[id]
	if !ok {
		return
	}
	entry.Notes = notes
	s.Cases[id] = entry
}

// MarkCopied records when the letter was last copied to the clipboard.
func (s *CaseStore) MarkCopied(id string) {
	entry, ok := s.Cases[id]
	if !ok {
		return
	}
	entry.LetterCopiedAt = time.Now().Format(time.RFC3339)
	s.Cases[id] = entry
}

func (s *CaseStore) Get(id string) (CaseEntry, bool) {
	if s.Cases == nil {
		return CaseEntry{}, false
	}
	entry, ok := s.Cases[id]
	return entry, ok
}

// Remove forgets a tracked appeal, after a backend delete.
func (s *CaseStore) Remove(id string) {
	delete(s.Cases, id)
}
