package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	htmlExt = ".html"
	metaExt = ".meta.json"
)

// FileStore stores snapshots in a local directory as NAME.html with a
// NAME.meta.json sidecar.
type FileStore struct {
	dir string
}

type fileMeta struct {
	Root      string    `json:"root,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ErrStore.WithDetail("create %s", dir).Wrap(err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Put implements Store.
func (s *FileStore) Put(_ context.Context, snap Snapshot) error {
	if err := checkName(snap.Name); err != nil {
		return err
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	meta, err := json.MarshalIndent(fileMeta{Root: snap.Root, CreatedAt: snap.CreatedAt}, "", "  ")
	if err != nil {
		return ErrStore.WithDetail("encode %s metadata", snap.Name).Wrap(err)
	}
	if err := writeFileAtomic(s.path(snap.Name, htmlExt), snap.HTML); err != nil {
		return ErrStore.WithDetail("write %s", snap.Name).Wrap(err)
	}
	if err := writeFileAtomic(s.path(snap.Name, metaExt), meta); err != nil {
		return ErrStore.WithDetail("write %s metadata", snap.Name).Wrap(err)
	}
	return nil
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, name string) (Snapshot, error) {
	if err := checkName(name); err != nil {
		return Snapshot{}, err
	}
	html, err := os.ReadFile(s.path(name, htmlExt))
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrStore.WithDetail("%q", name).Wrap(ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, ErrStore.WithDetail("read %s", name).Wrap(err)
	}

	snap := Snapshot{Name: name, HTML: html}
	// A missing sidecar only loses metadata.
	if data, err := os.ReadFile(s.path(name, metaExt)); err == nil {
		var meta fileMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return Snapshot{}, ErrStore.WithDetail("decode %s metadata", name).Wrap(err)
		}
		snap.Root = meta.Root
		snap.CreatedAt = meta.CreatedAt
	}
	return snap, nil
}

// List implements Store.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, ErrStore.WithDetail("list %s", s.dir).Wrap(err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), htmlExt); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func (s *FileStore) path(name, ext string) string {
	return filepath.Join(s.dir, name+ext)
}

// writeFileAtomic writes through a temp file so readers never see a
// partial snapshot.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
