package config

import (
	"time"

	"github.com/aldara/sentra/internal/engine"
)

// ThresholdTable resolves the configured hysteresis table, falling back to
// the engine defaults when no override is present.
func (c EngineConfig) ThresholdTable() engine.ThresholdTable {
	t := engine.DefaultThresholds()
	if o := c.Thresholds; o != nil {
		if o.SafeToCaution > 0 {
			t.SafeToCaution = o.SafeToCaution
		}
		if o.CautionToElevated > 0 {
			t.CautionToElevated = o.CautionToElevated
		}
		if o.ElevatedToHigh > 0 {
			t.ElevatedToHigh = o.ElevatedToHigh
		}
		if o.HighToElevated > 0 {
			t.HighToElevated = o.HighToElevated
		}
		if o.ElevatedToCaution > 0 {
			t.ElevatedToCaution = o.ElevatedToCaution
		}
		if o.CautionToSafe > 0 {
			t.CautionToSafe = o.CautionToSafe
		}
	}
	return t
}

// CooldownTable resolves the configured cooldowns, falling back to the
// engine defaults when no override is present.
func (c EngineConfig) CooldownTable() engine.CooldownTable {
	t := engine.DefaultCooldowns()
	if o := c.Cooldowns; o != nil {
		if o.SafeSeconds > 0 {
			t.Safe = time.Duration(o.SafeSeconds) * time.Second
		}
		if o.CautionSeconds > 0 {
			t.Caution = time.Duration(o.CautionSeconds) * time.Second
		}
		if o.ElevatedRiskSeconds > 0 {
			t.ElevatedRisk = time.Duration(o.ElevatedRiskSeconds) * time.Second
		}
		if o.HighRiskSeconds > 0 {
			t.HighRisk = time.Duration(o.HighRiskSeconds) * time.Second
		}
	}
	return t
}
