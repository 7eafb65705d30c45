// Package filekv implements storage.Adapter with one file per key.
package filekv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"checklist/internal/storage"
)

// Ext is the file extension used for stored values.
const Ext = ".json"

// Store keeps each key in <dir>/<key>.json.
//
// Writes are atomic and durable (file sync + atomic rename + dir sync).
type Store struct {
	dir string
}

var _ storage.Adapter = (*Store)(nil)

// New returns a Store rooted at dir. The directory is created on first write.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("dir is required")
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file holding key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+Ext)
}

// Read implements storage.Adapter.
func (s *Store) Read(ctx context.Context, key string) (string, bool, error) {
	if err := storage.ValidateKey(key); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, storage.Unavailable("read", key, err)
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, storage.Unavailable("read", key, err)
	}
	return string(data), true, nil
}

// Write implements storage.Adapter.
func (s *Store) Write(ctx context.Context, key, text string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return storage.Unavailable("write", key, err)
	}
	if err := ensureDirDurable(s.dir, 0o700); err != nil {
		return storage.Unavailable("write", key, err)
	}
	if err := writeFileAtomicDurable(s.Path(key), []byte(text), 0o600); err != nil {
		return storage.Unavailable("write", key, err)
	}
	return nil
}

func ensureDirDurable(dir string, perm os.FileMode) error {
	if err := os.MkdirAll(dir, perm); err != nil {
		return err
	}
	return fsyncDir(dir)
}

func writeFileAtomicDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
