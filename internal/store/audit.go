package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aldara/sentra/internal/engine"
)

// RecordDecision appends one decision to the audit trail. Callers treat this
// as best-effort history: a failed insert never affects decision delivery.
func (p *Postgres) RecordDecision(ctx context.Context, agentID string, d engine.Decision, loc *engine.Location) error {
	var lat, lng *float64
	if loc != nil {
		lat, lng = &loc.Latitude, &loc.Longitude
	}
	_, err := p.db.Exec(ctx, `
		INSERT INTO decisions (id, agent_id, action, state, risk_score, message, priority, alerted, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.New().String(), agentID,
		string(d.Action), string(d.State), d.RiskScore, d.Message, d.Priority, d.Alerted,
		lat, lng, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("record decision for %s: %w", agentID, err)
	}
	return nil
}

// DecisionCount returns the number of audited decisions for an agent.
func (p *Postgres) DecisionCount(ctx context.Context, agentID string) (int, error) {
	var n int
	err := p.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM decisions WHERE agent_id = $1`, agentID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count decisions for %s: %w", agentID, err)
	}
	return n, nil
}
