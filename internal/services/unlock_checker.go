package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/db"
	"github.com/stakewell-labs/staking-vault/internal/events"
	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
	"github.com/stakewell-labs/staking-vault/internal/types"
	"github.com/stakewell-labs/staking-vault/internal/utils/poller"
)

func (s *Service) StartUnlockChecker(ctx context.Context) {
	unlockCheckerPoller := poller.NewPoller(
		s.cfg.Poller.UnlockCheckerPollingInterval,
		metrics.RecordPollerDuration("unlock_checker", s.checkUnlocks),
	)
	go unlockCheckerPoller.Start(ctx)
}

// checkUnlocks flips ACTIVE stakes whose lock elapsed to UNLOCKED and
// announces each one. The transition is purely informational for stakers;
// withdrawal eligibility is always recomputed from start time, so a missed
// poll costs nothing but notification latency.
func (s *Service) checkUnlocks(ctx context.Context) error {
	lockDuration := s.ledger.Params().LockDuration

	unlockableStakes, err := s.db.FindUnlockableStakes(
		ctx,
		s.now().UTC(),
		lockDuration,
		s.cfg.Poller.UnlockedStakesLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to find unlockable stakes: %w", err)
	}

	for _, stakeDoc := range unlockableStakes {
		log.Ctx(ctx).Debug().
			Str("staker_address", stakeDoc.StakerAddress).
			Time("start_time", stakeDoc.StartTime).
			Msg("checking if stake is unlockable")

		err := s.db.UpdateStakeState(
			ctx,
			stakeDoc.StakerAddress,
			types.QualifiedStatesForUnlocked(),
			types.StateUnlocked,
		)
		if err != nil {
			// The stake may have been withdrawn between the find and the
			// update; that is not an error.
			if db.IsNotFoundError(err) {
				log.Ctx(ctx).Debug().
					Str("staker_address", stakeDoc.StakerAddress).
					Msg("skipping unlock, stake already transitioned")
				continue
			}
			return fmt.Errorf("failed to update stake state: %w", err)
		}

		s.emitEvent(ctx, events.New(types.EventStakeUnlocked, events.StakeUnlocked{
			StakerAddress: stakeDoc.StakerAddress,
			Amount:        stakeDoc.Amount,
			StartTime:     stakeDoc.StartTime,
			UnlockedAt:    stakeDoc.StartTime.Add(lockDuration),
		}))
	}

	return nil
}
