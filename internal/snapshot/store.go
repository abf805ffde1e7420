// Package snapshot persists rendered host trees.
//
// A snapshot is the HTML of a container after a MountTree pass, stored under
// a name. Snapshots live either in a local directory or in an S3 bucket:
//
//	store, err := snapshot.Open(ctx, cfg.Snapshot)
//	err = store.Put(ctx, snapshot.Snapshot{Name: "home", HTML: html})
package snapshot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vango-dev/reconciler/internal/config"
	rerrors "github.com/vango-dev/reconciler/internal/errors"
)

// Errors returned by stores. Match them with errors.Is.
var (
	// ErrStore is the code shared by all storage failures.
	ErrStore = rerrors.New(rerrors.CodeSnapshotStore)

	// ErrNotFound is returned by Get for an unknown name.
	ErrNotFound = errors.New("snapshot: not found")

	// ErrInvalidName is returned for names that are empty or contain path
	// separators.
	ErrInvalidName = errors.New("snapshot: invalid name")
)

// Snapshot is one stored rendering.
type Snapshot struct {
	// Name identifies the snapshot within its store.
	Name string

	// HTML is the serialized container content.
	HTML []byte

	// Root is the type name of the mounted root element.
	Root string

	// CreatedAt is set by Put when zero.
	CreatedAt time.Time
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores s, replacing any snapshot with the same name.
	Put(ctx context.Context, s Snapshot) error

	// Get returns the snapshot stored under name.
	Get(ctx context.Context, name string) (Snapshot, error)

	// List returns the stored names, sorted.
	List(ctx context.Context) ([]string, error)
}

// Open returns the store selected by cfg: S3 when a bucket is configured,
// the filesystem otherwise.
func Open(ctx context.Context, cfg config.SnapshotConfig) (Store, error) {
	if cfg.Bucket != "" {
		return NewS3Store(ctx, S3Config{
			Bucket:   cfg.Bucket,
			Prefix:   cfg.Prefix,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
	}
	return NewFileStore(cfg.Dir)
}

// ValidName reports whether name can be used as a snapshot name.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

func checkName(name string) error {
	if !ValidName(name) {
		return ErrStore.WithDetail("%q", name).Wrap(ErrInvalidName)
	}
	return nil
}
