// Package storage keeps backup snapshots on disk so a full export survives
// the browser session that triggered it.
package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

type SnapshotStore interface {
	Put(name string, r io.Reader) (string, error) // returns canonical name
	Get(name string) (io.ReadCloser, error)
	List() ([]string, error)
}

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// SnapshotName builds the conventional timestamped file name for a backup.
func SnapshotName(t time.Time) string {
	return "scorebook-backup-" + t.UTC().Format("2006-01-02T15-04-05") + ".json"
}

func (s *FSStore) Put(name string, r io.Reader) (string, error) {
	if name == "" {
		return "", errors.New("empty snapshot name")
	}
	dst := filepath.Join(s.base, filepath.Base(name))
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return filepath.Base(name), nil
}

func (s *FSStore) Get(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.base, filepath.Base(name)))
}

func (s *FSStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
