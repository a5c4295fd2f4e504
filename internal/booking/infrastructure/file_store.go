package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/railbook/railbook/internal/railway/snapshot"
)

// FileSnapshotStore persists snapshots as JSON files under a base directory.
type FileSnapshotStore struct {
	dir string
}

func NewFileSnapshotStore(dir string) *FileSnapshotStore {
	if dir == "" {
		dir = "."
	}
	return &FileSnapshotStore{dir: dir}
}

func (s *FileSnapshotStore) path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *FileSnapshotStore) Save(ctx context.Context, name string, snap snapshot.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	// Write to a temp file first so a crash mid-write never corrupts the
	// previous snapshot.
	target := s.path(name)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshotStore) Load(ctx context.Context, name string) (snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return snapshot.Snapshot{}, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("reading snapshot %q: %w", name, err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("decoding snapshot %q: %w", name, err)
	}
	return snap, nil
}
