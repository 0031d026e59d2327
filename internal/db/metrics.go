package db

import (
	"context"
	"time"

	"github.com/stakewell-labs/staking-vault/internal/db/model"
	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveNewStake(ctx context.Context, stakeDoc *model.StakeDocument) error {
	return d.run("SaveNewStake", func() error {
		return d.db.SaveNewStake(ctx, stakeDoc)
	})
}

func (d *DbWithMetrics) GetStakeByStakerAddress(ctx context.Context, stakerAddress string) (result *model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetStakeByStakerAddress", func() error {
		result, err = d.db.GetStakeByStakerAddress(ctx, stakerAddress)
		return err
	})

	return
}

func (d *DbWithMetrics) GetStakesByStates(ctx context.Context, states []types.StakeState) (result []*model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetStakesByStates", func() error {
		result, err = d.db.GetStakesByStates(ctx, states)
		return err
	})

	return
}

func (d *DbWithMetrics) UpdateStakeState(
	ctx context.Context,
	stakerAddress string,
	qualifiedPreviousStates []types.StakeState,
	newState types.StakeState,
) error {
	return d.run("UpdateStakeState", func() error {
		return d.db.UpdateStakeState(ctx, stakerAddress, qualifiedPreviousStates, newState)
	})
}

func (d *DbWithMetrics) FindUnlockableStakes(
	ctx context.Context, now time.Time, lockDuration time.Duration, limit int64,
) (result []*model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("FindUnlockableStakes", func() error {
		result, err = d.db.FindUnlockableStakes(ctx, now, lockDuration, limit)
		return err
	})

	return
}

func (d *DbWithMetrics) DeleteStake(ctx context.Context, stakerAddress string) error {
	return d.run("DeleteStake", func() error {
		return d.db.DeleteStake(ctx, stakerAddress)
	})
}

func (d *DbWithMetrics) SaveStakeHistory(ctx context.Context, historyDoc *model.StakeHistoryDocument) error {
	return d.run("SaveStakeHistory", func() error {
		return d.db.SaveStakeHistory(ctx, historyDoc)
	})
}

func (d *DbWithMetrics) GetStakeHistoryByStaker(ctx context.Context, stakerAddress string) (result []*model.StakeHistoryDocument, err error) {
	//nolint:errcheck
	d.run("GetStakeHistoryByStaker", func() error {
		result, err = d.db.GetStakeHistoryByStaker(ctx, stakerAddress)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveParamEvent(ctx context.Context, eventDoc *model.ParamEventDocument) error {
	return d.run("SaveParamEvent", func() error {
		return d.db.SaveParamEvent(ctx, eventDoc)
	})
}

func (d *DbWithMetrics) GetParamEvents(ctx context.Context, limit int64) (result []*model.ParamEventDocument, err error) {
	//nolint:errcheck
	d.run("GetParamEvents", func() error {
		result, err = d.db.GetParamEvents(ctx, limit)
		return err
	})

	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
