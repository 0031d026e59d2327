package db

import (
	"context"
	"time"

	"github.com/stakewell-labs/staking-vault/internal/db/model"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	SaveNewStake(ctx context.Context, stakeDoc *model.StakeDocument) error
	GetStakeByStakerAddress(ctx context.Context, stakerAddress string) (*model.StakeDocument, error)
	GetStakesByStates(ctx context.Context, states []types.StakeState) ([]*model.StakeDocument, error)
	UpdateStakeState(
		ctx context.Context,
		stakerAddress string,
		qualifiedPreviousStates []types.StakeState,
		newState types.StakeState,
	) error
	FindUnlockableStakes(
		ctx context.Context, now time.Time, lockDuration time.Duration, limit int64,
	) ([]*model.StakeDocument, error)
	DeleteStake(ctx context.Context, stakerAddress string) error
	SaveStakeHistory(ctx context.Context, historyDoc *model.StakeHistoryDocument) error
	GetStakeHistoryByStaker(ctx context.Context, stakerAddress string) ([]*model.StakeHistoryDocument, error)
	SaveParamEvent(ctx context.Context, eventDoc *model.ParamEventDocument) error
	GetParamEvents(ctx context.Context, limit int64) ([]*model.ParamEventDocument, error)
}
