package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nvaldebenito/storefront/internal/session/domain"
)

const fileName = "session.json"

// File persists the session as a JSON blob in the data directory.
// Concurrent processes race with last-write-wins semantics; there is no
// cross-process coordination.
type File struct {
	path string
}

func NewFile(dataDir string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &File{path: filepath.Join(dataDir, fileName)}, nil
}

type sessionBlob struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (f *File) Load() (domain.Session, bool, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("read session file: %w", err)
	}

	var blob sessionBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return domain.Session{}, false, fmt.Errorf("parse session file: %w", err)
	}

	return domain.Session{User: blob.User, Token: blob.Token}, true, nil
}

func (f *File) Save(sess domain.Session) error {
	raw, err := json.Marshal(sessionBlob{User: sess.User, Token: sess.Token})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (f *File) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
