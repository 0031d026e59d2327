package types

// Enum values for Stake State
type StakeState string

const (
	StateActive             StakeState = "ACTIVE"
	StateUnlocked           StakeState = "UNLOCKED"
	StateWithdrawn          StakeState = "WITHDRAWN"
	StateEmergencyWithdrawn StakeState = "EMERGENCY_WITHDRAWN"
)

func (s StakeState) String() string {
	return string(s)
}

// OpenStates returns the states in which a stake is still held in vault
// custody and counts toward the total-staked figure.
func OpenStates() []StakeState {
	return []StakeState{StateActive, StateUnlocked}
}

// QualifiedStatesForUnlocked returns the qualified current states for the
// unlock-checker transition to UNLOCKED.
func QualifiedStatesForUnlocked() []StakeState {
	return []StakeState{StateActive}
}

// QualifiedStatesForWithdrawn returns the qualified current states for an
// ordinary withdrawal after the lock has elapsed.
func QualifiedStatesForWithdrawn() []StakeState {
	return []StakeState{StateActive, StateUnlocked}
}

// QualifiedStatesForEmergencyWithdrawn returns the qualified current states
// for an emergency withdrawal, which bypasses the lock entirely.
func QualifiedStatesForEmergencyWithdrawn() []StakeState {
	return []StakeState{StateActive, StateUnlocked}
}
