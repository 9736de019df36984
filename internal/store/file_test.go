package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aldara/sentra/internal/engine"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "alice.json")
	fs := NewFileStore(path, zap.NewNop())
	ctx := context.Background()

	last := time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC)
	ac := engine.NewAgentContext()
	ac.CurrentState = engine.StateElevatedRisk
	ac.CurrentRiskScore = 0.65
	ac.PreviousRiskScore = 0.4
	ac.LastAlertTime = &last
	ac.AlertCount = 2

	if err := fs.Save(ctx, ac); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CurrentState != engine.StateElevatedRisk || got.CurrentRiskScore != 0.65 {
		t.Errorf("loaded snapshot mismatch: %+v", got)
	}
	if got.LastAlertTime == nil || !got.LastAlertTime.Equal(last) {
		t.Errorf("last alert time = %v, want %v", got.LastAlertTime, last)
	}
	if got.AlertCount != 2 {
		t.Errorf("alert count = %d, want 2", got.AlertCount)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	if _, err := fs.Load(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("load of missing file: err = %v, want ErrNotFound", err)
	}
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := NewFileStore(path, zap.NewNop())
	if _, err := fs.Load(context.Background()); err == nil {
		t.Error("expected decode error for corrupt snapshot")
	}
}
