package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aldara/sentra/internal/engine"
)

// ErrNotFound is returned by Load when no snapshot exists for an agent.
var ErrNotFound = errors.New("no snapshot found")

// SaveSnapshot upserts the full context snapshot for an agent.
func (p *Postgres) SaveSnapshot(ctx context.Context, agentID string, ac *engine.AgentContext) error {
	data, err := json.Marshal(ac)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", agentID, err)
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO agent_contexts (agent_id, snapshot, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (agent_id) DO UPDATE SET
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at`,
		agentID, data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", agentID, err)
	}
	return nil
}

// LoadSnapshot retrieves the last saved context for an agent.
func (p *Postgres) LoadSnapshot(ctx context.Context, agentID string) (*engine.AgentContext, error) {
	var data []byte
	err := p.db.QueryRow(ctx,
		`SELECT snapshot FROM agent_contexts WHERE agent_id = $1`, agentID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", agentID, err)
	}
	var ac engine.AgentContext
	if err := json.Unmarshal(data, &ac); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", agentID, err)
	}
	return &ac, nil
}

// SnapshotStore binds the Postgres snapshot table to one agent, implementing
// engine.ContextStore.
type SnapshotStore struct {
	pg      *Postgres
	agentID string
}

// Snapshots returns the engine.ContextStore view for an agent.
func (p *Postgres) Snapshots(agentID string) *SnapshotStore {
	return &SnapshotStore{pg: p, agentID: agentID}
}

func (s *SnapshotStore) Load(ctx context.Context) (*engine.AgentContext, error) {
	return s.pg.LoadSnapshot(ctx, s.agentID)
}

func (s *SnapshotStore) Save(ctx context.Context, ac *engine.AgentContext) error {
	return s.pg.SaveSnapshot(ctx, s.agentID, ac)
}
