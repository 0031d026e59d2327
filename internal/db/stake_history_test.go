//go:build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell-labs/staking-vault/internal/db/model"
	"github.com/stakewell-labs/staking-vault/internal/types"
	"github.com/stakewell-labs/staking-vault/pkg"
)

func TestStakeHistory(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	staker := "staker-" + pkg.RandString(12)
	now := time.Now().UTC().Truncate(time.Millisecond)

	first := &model.StakeHistoryDocument{
		StakerAddress: staker,
		Amount:        "1000",
		RewardPaid:    "100",
		RewardAccrued: "100",
		StartTime:     now.Add(-48 * time.Hour),
		CloseTime:     now.Add(-24 * time.Hour),
		CloseReason:   types.StateWithdrawn,
	}
	second := &model.StakeHistoryDocument{
		StakerAddress: staker,
		Amount:        "2000",
		RewardPaid:    "0",
		RewardAccrued: "55",
		StartTime:     now.Add(-12 * time.Hour),
		CloseTime:     now,
		CloseReason:   types.StateEmergencyWithdrawn,
	}
	other := &model.StakeHistoryDocument{
		StakerAddress: "staker-" + pkg.RandString(12),
		Amount:        "3000",
		RewardPaid:    "0",
		RewardAccrued: "0",
		StartTime:     now.Add(-time.Hour),
		CloseTime:     now,
		CloseReason:   types.StateWithdrawn,
	}

	for _, doc := range []*model.StakeHistoryDocument{first, second, other} {
		err := testDB.SaveStakeHistory(ctx, doc)
		require.NoError(t, err)
		assert.False(t, doc.ID.IsZero())
	}

	history, err := testDB.GetStakeHistoryByStaker(ctx, staker)
	require.NoError(t, err)

	// most recently closed first, other stakers excluded
	expected := []*model.StakeHistoryDocument{second, first}
	assert.Equal(t, expected, history)
}

func TestParamEvents(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	now := time.Now().UTC().Truncate(time.Millisecond)

	rateChange := &model.ParamEventDocument{
		EventType: types.EventRewardRateUpdated.String(),
		OldValue:  "500",
		NewValue:  "1000",
		Actor:     "admin",
		Timestamp: now.Add(-time.Hour),
	}
	funding := &model.ParamEventDocument{
		EventType: types.EventRewardsFunded.String(),
		NewValue:  "1000000",
		Actor:     "admin",
		Timestamp: now,
	}

	for _, doc := range []*model.ParamEventDocument{rateChange, funding} {
		err := testDB.SaveParamEvent(ctx, doc)
		require.NoError(t, err)
	}

	events, err := testDB.GetParamEvents(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []*model.ParamEventDocument{funding, rateChange}, events)

	// limit is respected
	events, err = testDB.GetParamEvents(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []*model.ParamEventDocument{funding}, events)
}
