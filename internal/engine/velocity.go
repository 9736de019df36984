package engine

// RiskVelocity is the signed difference between the incoming risk score and
// the immediately preceding one. No smoothing or decay is applied: a single
// large jump produces a single large velocity value, observed exactly once.
func RiskVelocity(newScore, previousScore float64) float64 {
	return newScore - previousScore
}
