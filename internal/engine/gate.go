package engine

import "time"

// AlertGate rate-limits attention-grabbing actions with a per-state cooldown.
type AlertGate struct {
	cooldowns CooldownTable
}

// NewAlertGate creates a gate over the given cooldown table.
func NewAlertGate(cooldowns CooldownTable) *AlertGate {
	return &AlertGate{cooldowns: cooldowns}
}

// Allows reports whether an alerting action may fire. The cooldown is keyed
// by the state after the current transition. A nil lastAlert means no alert
// has ever fired and the gate is open.
func (g *AlertGate) Allows(state AgentState, lastAlert *time.Time, now time.Time) bool {
	if lastAlert == nil {
		return true
	}
	return now.Sub(*lastAlert) >= g.cooldowns.For(state)
}
