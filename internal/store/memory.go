package store

import (
	"context"

	"github.com/aldara/sentra/internal/engine"
)

// Memory is an in-process snapshot store used by the simulator and tests.
type Memory struct {
	snapshot *engine.AgentContext
}

// NewMemory creates an empty in-memory snapshot store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (*engine.AgentContext, error) {
	if m.snapshot == nil {
		return nil, ErrNotFound
	}
	// Hand back a copy so the engine's mutations don't alias the stored one.
	cp := *m.snapshot
	cp.LocationHistory = append([]engine.TrailEntry(nil), m.snapshot.LocationHistory...)
	return &cp, nil
}

func (m *Memory) Save(ctx context.Context, ac *engine.AgentContext) error {
	cp := *ac
	cp.LocationHistory = append([]engine.TrailEntry(nil), ac.LocationHistory...)
	m.snapshot = &cp
	return nil
}
