package engine

import "time"

// ThresholdTable holds the six hysteresis thresholds of the state machine.
// Escalation fires on score >= threshold, de-escalation on score < threshold,
// so the up and down edges of a boundary differ and scores oscillating near a
// single cutoff do not flap the state.
type ThresholdTable struct {
	SafeToCaution     float64 `json:"safe_to_caution"`
	CautionToElevated float64 `json:"caution_to_elevated"`
	ElevatedToHigh    float64 `json:"elevated_to_high"`
	HighToElevated    float64 `json:"high_to_elevated"`
	ElevatedToCaution float64 `json:"elevated_to_caution"`
	CautionToSafe     float64 `json:"caution_to_safe"`
}

// DefaultThresholds returns the production hysteresis table.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		SafeToCaution:     0.35,
		CautionToElevated: 0.60,
		ElevatedToHigh:    0.80,
		HighToElevated:    0.70,
		ElevatedToCaution: 0.50,
		CautionToSafe:     0.30,
	}
}

// CooldownTable holds the per-state minimum interval between
// attention-grabbing actions.
type CooldownTable struct {
	Safe         time.Duration
	Caution      time.Duration
	ElevatedRisk time.Duration
	HighRisk     time.Duration
}

// DefaultCooldowns returns the production cooldown periods.
func DefaultCooldowns() CooldownTable {
	return CooldownTable{
		Safe:         10 * time.Minute,
		Caution:      5 * time.Minute,
		ElevatedRisk: 2 * time.Minute,
		HighRisk:     1 * time.Minute,
	}
}

// For returns the cooldown for a state.
func (c CooldownTable) For(s AgentState) time.Duration {
	switch s {
	case StateSafe:
		return c.Safe
	case StateCaution:
		return c.Caution
	case StateElevatedRisk:
		return c.ElevatedRisk
	case StateHighRisk:
		return c.HighRisk
	}
	return c.Safe
}

// VelocityThresholds classifies the per-update change in risk score.
// Only Moderate gates a policy branch today; Rapid and Slow are part of the
// recognized scale.
type VelocityThresholds struct {
	Rapid    float64 `json:"rapid"`
	Moderate float64 `json:"moderate"`
	Slow     float64 `json:"slow"`
}

// DefaultVelocityThresholds returns the production velocity scale.
func DefaultVelocityThresholds() VelocityThresholds {
	return VelocityThresholds{Rapid: 0.20, Moderate: 0.10, Slow: 0.05}
}
