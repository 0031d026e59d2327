package services

import (
	"context"
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/ledger"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

const (
	bootstrapRetryInterval = 10 * time.Second
	bootstrapMaxRetries    = 10
)

// Bootstrap restores every open stake from MongoDB into the empty in-memory
// ledger before the service takes traffic. The database may still be coming
// up alongside us, so attempts are retried with backoff up to
// bootstrapMaxRetries.
func (s *Service) Bootstrap(ctx context.Context) error {
	var err error
	for retries := 0; retries < bootstrapMaxRetries; retries++ {
		err = s.attemptBootstrap(ctx)
		if err == nil {
			log.Info().Msg("Successfully bootstrapped staking ledger")
			return nil
		}

		log.Err(err).
			Msgf(
				"Failed to bootstrap staking ledger, attempt %d/%d",
				retries+1,
				bootstrapMaxRetries,
			)

		// Exponential backoff
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(bootstrapRetryInterval * time.Duration(retries)):
		}
	}

	return fmt.Errorf("failed to bootstrap staking ledger after %d attempts: %w", bootstrapMaxRetries, err)
}

func (s *Service) attemptBootstrap(ctx context.Context) error {
	openStakes, err := s.db.GetStakesByStates(ctx, types.OpenStates())
	if err != nil {
		return fmt.Errorf("failed to load open stakes: %w", err)
	}

	stakes := make([]ledger.AccountStake, 0, len(openStakes))
	total := math.ZeroInt()
	for _, doc := range openStakes {
		amount, ok := math.NewIntFromString(doc.Amount)
		if !ok {
			return fmt.Errorf("stake for %s has malformed amount %q", doc.StakerAddress, doc.Amount)
		}
		rewardDebt, ok := math.NewIntFromString(doc.RewardDebt)
		if !ok {
			return fmt.Errorf("stake for %s has malformed reward debt %q", doc.StakerAddress, doc.RewardDebt)
		}

		stakes = append(stakes, ledger.AccountStake{
			Account: doc.StakerAddress,
			StakeRecord: ledger.StakeRecord{
				Amount:     amount,
				StartTime:  doc.StartTime,
				RewardDebt: rewardDebt,
			},
		})
		total = total.Add(amount)
	}

	if err := s.ledger.Restore(stakes); err != nil {
		return fmt.Errorf("failed to restore stakes into ledger: %w", err)
	}

	if !s.ledger.TotalStaked().Equal(total) {
		return fmt.Errorf("restored total %s does not match snapshot total %s", s.ledger.TotalStaked(), total)
	}

	log.Info().
		Int("stake_count", len(stakes)).
		Stringer("total_staked", total).
		Msg("Restored open stakes from database")
	return nil
}
