package types

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventStakeCreated            EventType = "staking.v1.EventStakeCreated"
	EventStakeUnlocked           EventType = "staking.v1.EventStakeUnlocked"
	EventStakeWithdrawn          EventType = "staking.v1.EventStakeWithdrawn"
	EventStakeEmergencyWithdrawn EventType = "staking.v1.EventStakeEmergencyWithdrawn"
)

const (
	EventRewardRateUpdated   EventType = "staking.v1.EventRewardRateUpdated"
	EventLockDurationUpdated EventType = "staking.v1.EventLockDurationUpdated"
	EventRewardsFunded       EventType = "staking.v1.EventRewardsFunded"
	EventExcessWithdrawn     EventType = "staking.v1.EventExcessWithdrawn"
)
