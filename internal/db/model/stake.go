package model

import (
	"time"

	"github.com/stakewell-labs/staking-vault/internal/types"
)

const StakeCollection = "stakes"

// StakeDocument is one live stake held in vault custody. The staker account
// is the primary key, which enforces the one-live-stake-per-account rule at
// the persistence layer too. Amounts are stored as decimal strings since
// they routinely exceed int64 at 18-decimal token scale.
type StakeDocument struct {
	StakerAddress string           `bson:"_id"`
	Amount        string           `bson:"amount"`
	StartTime     time.Time        `bson:"start_time"`
	RewardDebt    string           `bson:"reward_debt"`
	State         types.StakeState `bson:"state"`
}

func NewStakeDocument(
	stakerAddress string,
	amount string,
	startTime time.Time,
) *StakeDocument {
	return &StakeDocument{
		StakerAddress: stakerAddress,
		Amount:        amount,
		StartTime:     startTime,
		RewardDebt:    "0",
		State:         types.StateActive,
	}
}
