package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

const (
	permSessionFile = 0o600
	permSessionDir  = 0o700
)

type schema struct {
	SessionID string `toml:"tidbit_session_id"`
}

// FileStore keeps the session token in a TOML file so it survives restarts
type FileStore struct {
	FilePath string
	Logger   zerolog.Logger

	mu sync.Mutex
}

// NewFileStore creates a store backed by path; the file is created on first save
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{FilePath: path, Logger: logger}
}

var _ ports.SessionStore = (*FileStore)(nil)

// Save writes the token, replacing the file atomically
func (s *FileStore) Save(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.FilePath), permSessionDir); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.FilePath), ".session-*.toml")
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	defer os.Remove(tmp.Name())

	enc := toml.NewEncoder(tmp)
	enc.Indent = ""
	if err := enc.Encode(schema{SessionID: token}); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	if err := tmp.Chmod(permSessionFile); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	if err := os.Rename(tmp.Name(), s.FilePath); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	return nil
}

// Read loads the token; a missing or unreadable file reads as absent
func (s *FileStore) Read(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data schema
	if _, err := toml.DecodeFile(s.FilePath, &data); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.Logger.Warn().
				Err(err).
				Str("path", s.FilePath).
				Msg("failed to read session file")
		}
		return "", false
	}
	return data.SessionID, data.SessionID != ""
}

// Clear removes the session file
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.FilePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", core.ErrStoreOperation, err)
	}
	return nil
}
