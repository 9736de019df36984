package engine

// StateMachine applies the hysteresis transition table to risk scores.
// Four states, six directed transitions, implicit self-loop otherwise.
type StateMachine struct {
	table ThresholdTable
}

// NewStateMachine creates a state machine over the given threshold table.
func NewStateMachine(table ThresholdTable) *StateMachine {
	return &StateMachine{table: table}
}

// Next computes the state following current for the given risk score.
// Escalation uses >=, de-escalation uses strict <, so a score of exactly
// 0.70 keeps HighRisk. At most one transition happens per update.
func (m *StateMachine) Next(current AgentState, score float64) AgentState {
	switch current {
	case StateSafe:
		if score >= m.table.SafeToCaution {
			return StateCaution
		}
	case StateCaution:
		if score >= m.table.CautionToElevated {
			return StateElevatedRisk
		}
		if score < m.table.CautionToSafe {
			return StateSafe
		}
	case StateElevatedRisk:
		if score >= m.table.ElevatedToHigh {
			return StateHighRisk
		}
		if score < m.table.ElevatedToCaution {
			return StateCaution
		}
	case StateHighRisk:
		if score < m.table.HighToElevated {
			return StateElevatedRisk
		}
	}
	return current
}
