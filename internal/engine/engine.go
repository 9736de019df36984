package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ContextStore persists the engine's snapshot. Load returns the last saved
// context or an error when none can be read; Save overwrites the whole
// snapshot. Implementations live in internal/store.
type ContextStore interface {
	Load(ctx context.Context) (*AgentContext, error)
	Save(ctx context.Context, ac *AgentContext) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use this to step
// through alert cooldowns deterministically.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithVelocityThresholds overrides the velocity scale used by the policy.
func WithVelocityThresholds(v VelocityThresholds) Option {
	return func(e *Engine) { e.policy = NewDecisionPolicy(v) }
}

// Engine turns a stream of risk scores into bounded, proportionate
// intervention decisions. It is single-threaded by contract: callers must
// serialize ProcessRiskUpdate per engine (see Registry), because velocity
// and hysteresis both depend on the previous call's result.
type Engine struct {
	store   ContextStore
	machine *StateMachine
	gate    *AlertGate
	policy  *DecisionPolicy
	agent   *AgentContext
	now     func() time.Time
	logger  *zap.Logger
}

// New constructs an engine over the given store and tables. The previous
// snapshot is loaded from the store; a missing or unreadable snapshot falls
// back to a fresh default context with a warning, never an error.
func New(store ContextStore, table ThresholdTable, cooldowns CooldownTable, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		machine: NewStateMachine(table),
		gate:    NewAlertGate(cooldowns),
		policy:  NewDecisionPolicy(DefaultVelocityThresholds()),
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.agent = e.loadOrCreate()
	return e
}

func (e *Engine) loadOrCreate() *AgentContext {
	ac, err := e.store.Load(context.Background())
	if err != nil {
		e.logger.Warn("could not load agent context, starting fresh", zap.Error(err))
		return NewAgentContext()
	}
	if ac == nil || !ac.CurrentState.Valid() {
		if ac != nil {
			e.logger.Warn("loaded agent context has invalid state, starting fresh",
				zap.String("state", string(ac.CurrentState)))
		}
		return NewAgentContext()
	}
	if ac.LocationHistory == nil {
		ac.LocationHistory = []TrailEntry{}
	}
	return ac
}

// ProcessRiskUpdate is the single mutation path of the engine. It computes
// velocity, applies the hysteresis transition, consults the alert gate for
// the post-transition state, produces a decision, updates alert bookkeeping
// and the location trail, and persists the whole context best-effort.
//
// The score is expected in [0,1] but not validated; the threshold
// arithmetic is monotonic for any float.
func (e *Engine) ProcessRiskUpdate(ctx context.Context, score float64, loc *Location) Decision {
	velocity := RiskVelocity(score, e.agent.CurrentRiskScore)
	next := e.machine.Next(e.agent.CurrentState, score)

	e.agent.PreviousRiskScore = e.agent.CurrentRiskScore
	e.agent.CurrentRiskScore = score
	e.agent.RiskVelocity = velocity

	if next != e.agent.CurrentState {
		e.logger.Info("state transition",
			zap.String("from", string(e.agent.CurrentState)),
			zap.String("to", string(next)),
			zap.Float64("risk_score", score))
		e.agent.CurrentState = next
		e.agent.TimeInCurrentState = 0
	}

	now := e.now()
	gateAllows := e.gate.Allows(next, e.agent.LastAlertTime, now)

	decision := e.policy.Decide(next, score, velocity, gateAllows)

	// Alert bookkeeping moves only when an action was taken and the gate
	// permitted an alert this cycle.
	if decision.Action != ActionNone && gateAllows {
		t := now
		e.agent.LastAlertTime = &t
		e.agent.AlertCount++
		decision.Alerted = true
	}

	if loc != nil {
		e.agent.recordLocation(TrailEntry{
			Timestamp: now,
			Location:  *loc,
			RiskScore: score,
			State:     next,
		})
	}

	if err := e.store.Save(ctx, e.agent); err != nil {
		// In-memory context stays authoritative; only the snapshot is at risk.
		e.logger.Error("could not save agent context", zap.Error(err))
	}

	e.logger.Info("decision",
		zap.String("action", string(decision.Action)),
		zap.Int("priority", decision.Priority))

	return decision
}

// Reset discards all history and reinitializes the context to defaults,
// persisting immediately.
func (e *Engine) Reset(ctx context.Context) {
	e.agent = NewAgentContext()
	if err := e.store.Save(ctx, e.agent); err != nil {
		e.logger.Error("could not save agent context after reset", zap.Error(err))
	}
	e.logger.Info("agent context reset to initial state")
}

// Summary returns the current state snapshot for the state query endpoint.
func (e *Engine) Summary() Summary {
	return Summary{
		CurrentState:         e.agent.CurrentState,
		RiskScore:            e.agent.CurrentRiskScore,
		RiskVelocity:         e.agent.RiskVelocity,
		AlertCount:           e.agent.AlertCount,
		LocationHistoryCount: len(e.agent.LocationHistory),
	}
}
