package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/mosquito-alert/internal/domain"
	"github.com/spec-kit/mosquito-alert/internal/store"
)

// FileStore persists the session user as a JSON document on local disk,
// mirroring the browser localStorage record the web client keeps under the
// same key. Writes go through a temp file rename so a crash mid-write never
// leaves a corrupt record.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFileStore builds a file-backed session storage at path.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), store.SessionKey+".json")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Load reads the stored user, returning (nil, nil) when none exists.
func (f *FileStore) Load(_ context.Context) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		// treat an unreadable record as an absent session
		f.logger.Warn("discarding corrupt session record", zap.Error(err))
		return nil, nil
	}
	return &user, nil
}

// Save writes the user record; a nil user clears it.
func (f *FileStore) Save(_ context.Context, user *domain.User) error {
	if user == nil {
		return f.Clear(context.Background())
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Clear removes the stored record.
func (f *FileStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
