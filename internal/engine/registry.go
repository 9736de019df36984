package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// StoreFactory builds the snapshot store for a given agent ID.
type StoreFactory func(agentID string) ContextStore

// Registry owns one engine per logical agent and serializes calls per agent.
// The engine itself provides no synchronization; the registry is the
// single-writer layer the concurrency model requires.
type Registry struct {
	factory   StoreFactory
	table     ThresholdTable
	cooldowns CooldownTable
	opts      []Option
	logger    *zap.Logger

	mu     sync.Mutex
	agents map[string]*agentSlot
}

type agentSlot struct {
	mu     sync.Mutex
	engine *Engine
}

// NewRegistry creates a registry that lazily constructs engines via factory.
func NewRegistry(factory StoreFactory, table ThresholdTable, cooldowns CooldownTable, logger *zap.Logger, opts ...Option) *Registry {
	return &Registry{
		factory:   factory,
		table:     table,
		cooldowns: cooldowns,
		opts:      opts,
		logger:    logger,
		agents:    make(map[string]*agentSlot),
	}
}

func (r *Registry) slot(agentID string) *agentSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.agents[agentID]
	if !ok {
		s = &agentSlot{}
		r.agents[agentID] = s
	}
	return s
}

// engineFor returns the agent's engine, constructing it on first use.
// Caller must hold the slot lock.
func (r *Registry) engineFor(agentID string, s *agentSlot) *Engine {
	if s.engine == nil {
		logger := r.logger.With(zap.String("agent", agentID))
		s.engine = New(r.factory(agentID), r.table, r.cooldowns, logger, r.opts...)
	}
	return s.engine
}

// ProcessRiskUpdate runs one update for the agent, serialized per agent ID.
func (r *Registry) ProcessRiskUpdate(ctx context.Context, agentID string, score float64, loc *Location) Decision {
	s := r.slot(agentID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.engineFor(agentID, s).ProcessRiskUpdate(ctx, score, loc)
}

// Reset reinitializes the agent's context to defaults.
func (r *Registry) Reset(ctx context.Context, agentID string) {
	s := r.slot(agentID)
	s.mu.Lock()
	defer s.mu.Unlock()
	r.engineFor(agentID, s).Reset(ctx)
}

// Summary returns the agent's current state summary.
func (r *Registry) Summary(agentID string) Summary {
	s := r.slot(agentID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.engineFor(agentID, s).Summary()
}
