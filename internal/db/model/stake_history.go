package model

import (
	"time"

	"github.com/stakewell-labs/staking-vault/internal/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const StakeHistoryCollection = "stake_history"

// StakeHistoryDocument is an append-only record of a closed stake.
type StakeHistoryDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	StakerAddress string             `bson:"staker_address"`
	Amount        string             `bson:"amount"`
	RewardPaid    string             `bson:"reward_paid"`
	// RewardAccrued is what the accrual formula earned; it exceeds
	// RewardPaid when the payout was capped by solvency or forfeited on
	// emergency withdrawal.
	RewardAccrued string           `bson:"reward_accrued"`
	StartTime     time.Time        `bson:"start_time"`
	CloseTime     time.Time        `bson:"close_time"`
	CloseReason   types.StakeState `bson:"close_reason"`
}
