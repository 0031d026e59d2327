package services

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell-labs/staking-vault/internal/events"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

func TestCheckUnlocks(t *testing.T) {
	ctx := context.Background()

	t.Run("flips exactly the matured stakes", func(t *testing.T) {
		f := newFixture(t)
		f.mint(t, "alice", 1000)
		f.mint(t, "bob", 2000)

		_, err := f.service.Deposit(ctx, "alice", math.NewInt(1000))
		require.NoError(t, err)

		f.clock.Advance(lockDuration / 2)

		_, err = f.service.Deposit(ctx, "bob", math.NewInt(2000))
		require.NoError(t, err)

		// alice's lock has elapsed exactly, bob's has not
		f.clock.Advance(lockDuration / 2)

		require.NoError(t, f.service.checkUnlocks(ctx))

		aliceDoc, err := f.db.GetStakeByStakerAddress(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, types.StateUnlocked, aliceDoc.State)

		bobDoc, err := f.db.GetStakeByStakerAddress(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, types.StateActive, bobDoc.State)

		unlocked := f.emitter.byType(types.EventStakeUnlocked)
		require.Len(t, unlocked, 1)
		payload := unlocked[0].Payload.(events.StakeUnlocked)
		assert.Equal(t, "alice", payload.StakerAddress)
		assert.Equal(t, "1000", payload.Amount)
	})

	t.Run("does not announce the same stake twice", func(t *testing.T) {
		f := newFixture(t)
		f.mint(t, "alice", 1000)

		_, err := f.service.Deposit(ctx, "alice", math.NewInt(1000))
		require.NoError(t, err)

		f.clock.Advance(lockDuration + time.Hour)

		require.NoError(t, f.service.checkUnlocks(ctx))
		require.NoError(t, f.service.checkUnlocks(ctx))

		assert.Len(t, f.emitter.byType(types.EventStakeUnlocked), 1)
	})

	t.Run("unlocked stake still withdraws normally", func(t *testing.T) {
		f := newFixture(t)
		f.mint(t, "alice", 1000)

		_, err := f.service.Deposit(ctx, "alice", math.NewInt(1000))
		require.NoError(t, err)

		f.clock.Advance(lockDuration)
		require.NoError(t, f.service.checkUnlocks(ctx))

		_, err = f.service.Withdraw(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, f.service.Ledger().TotalStaked().IsZero())
	})
}

func TestRefreshVaultStats(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	f.mint(t, "alice", 1000)

	_, err := f.service.Deposit(ctx, "alice", math.NewInt(1000))
	require.NoError(t, err)

	// underfunded reward pool only triggers a warning, never an error
	f.clock.Advance(365 * 24 * time.Hour)
	require.NoError(t, f.service.refreshVaultStats(ctx))
}
