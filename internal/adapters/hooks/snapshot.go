// Package hooks mirrors the active-brand and session state into a small
// JSON file so the assistant's shell hooks can read it without a TOML
// parser. It is a second client of the same conceptual store, never the
// source of truth.
package hooks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/brand-manager-cli/internal/ports"
)

const (
	snapshotDir      = "hooks"
	snapshotFile     = "state.json"
	snapshotFileMode = 0o600
	snapshotDirMode  = 0o700
)

type SnapshotWriter struct {
	root string
}

var _ ports.SnapshotWriter = (*SnapshotWriter)(nil)

func NewSnapshotWriter(root string) *SnapshotWriter {
	return &SnapshotWriter{root: root}
}

func (w *SnapshotWriter) Write(ctx context.Context, snapshot ports.HookSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(w.root, snapshotDir)
	if err := os.MkdirAll(dir, snapshotDirMode); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode hook snapshot: %w", err)
	}

	target := filepath.Join(dir, snapshotFile)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), snapshotFileMode); err != nil {
		return fmt.Errorf("write hook snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace hook snapshot: %w", err)
	}

	return nil
}
