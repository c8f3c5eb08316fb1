package onboarding

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/doculaw-ai/doculaw/internal/models"
)

// FileProfileStore writes the profile as a single JSON file. It serves as the
// local fallback when the durable store is unavailable, and as the primary
// store for fully offline use.
type FileProfileStore struct {
	path string
}

func NewFileProfileStore(path string) *FileProfileStore {
	return &FileProfileStore{path: path}
}

func (f *FileProfileStore) Save(_ context.Context, profile *models.UserProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	// Write-then-rename so a crash never leaves a half-written profile.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Load reads the stored profile, or returns os.ErrNotExist if none was saved.
func (f *FileProfileStore) Load() (*models.UserProfile, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
