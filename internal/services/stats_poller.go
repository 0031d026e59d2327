package services

import (
	"context"
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
	"github.com/stakewell-labs/staking-vault/internal/utils/poller"
)

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		s.cfg.Poller.StatsPollingInterval,
		metrics.RecordPollerDuration("stats", s.refreshVaultStats),
	)
	go statsPoller.Start(ctx)
}

// refreshVaultStats recomputes the vault gauges from the ledger and the
// token balance, and warns when the reward pool can no longer cover the
// rewards accrued so far.
func (s *Service) refreshVaultStats(ctx context.Context) error {
	log := log.Ctx(ctx)

	stakes := s.ledger.Snapshot()
	totalStaked := s.ledger.TotalStaked()

	balance, err := s.token.BalanceOf(ctx, s.ledger.VaultAccount())
	if err != nil {
		return fmt.Errorf("failed to read vault balance: %w", err)
	}
	surplus := balance.Sub(totalStaked)

	totalAccrued := math.ZeroInt()
	for _, stake := range stakes {
		totalAccrued = totalAccrued.Add(s.ledger.CalculateReward(stake.Account))
	}

	metrics.RecordTotalStaked(intToFloat(totalStaked))
	metrics.RecordActiveStakesCount(len(stakes))
	metrics.RecordVaultBalance(intToFloat(balance))
	metrics.RecordRewardSurplus(intToFloat(surplus))

	if surplus.LT(totalAccrued) {
		log.Warn().
			Stringer("reward_surplus", surplus).
			Stringer("total_accrued_rewards", totalAccrued).
			Msg("Reward pool cannot cover accrued rewards; withdrawals will pay capped rewards")
	}

	log.Debug().
		Int("active_stakes", len(stakes)).
		Stringer("total_staked", totalStaked).
		Stringer("vault_balance", balance).
		Msg("Updated vault stats")
	return nil
}

// intToFloat converts a token amount to the lossy float64 prometheus
// gauges need. Precision loss at 18-decimal scale is acceptable for
// monitoring.
func intToFloat(amount math.Int) float64 {
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
