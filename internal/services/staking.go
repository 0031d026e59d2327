package services

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/db"
	"github.com/stakewell-labs/staking-vault/internal/db/model"
	"github.com/stakewell-labs/staking-vault/internal/events"
	"github.com/stakewell-labs/staking-vault/internal/ledger"
	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

// Deposit locks amount of the staker's tokens and opens their stake, then
// mirrors the new stake into MongoDB. If persistence fails the deposit is
// unwound so the ledger and the store never diverge.
func (s *Service) Deposit(ctx context.Context, stakerAddress string, amount math.Int) (*ledger.StakeRecord, error) {
	record, err := s.ledger.Deposit(ctx, stakerAddress, amount)
	if err != nil {
		metrics.RecordLedgerOperation("deposit", true)
		return nil, err
	}

	stakeDoc := model.NewStakeDocument(stakerAddress, record.Amount.String(), record.StartTime)
	if err := s.db.SaveNewStake(ctx, stakeDoc); err != nil {
		// Unwind the ledger deposit so the staker gets their tokens back
		// and can retry once the database recovers.
		if _, rollbackErr := s.ledger.EmergencyWithdraw(ctx, stakerAddress); rollbackErr != nil {
			log.Ctx(ctx).Error().
				Err(rollbackErr).
				Str("staker_address", stakerAddress).
				Msg("Failed to unwind deposit after persistence failure")
		}
		metrics.RecordLedgerOperation("deposit", true)
		return nil, fmt.Errorf("failed to persist stake: %w", err)
	}

	s.emitEvent(ctx, events.New(types.EventStakeCreated, events.StakeCreated{
		StakerAddress: stakerAddress,
		Amount:        record.Amount.String(),
		StartTime:     record.StartTime,
	}))
	metrics.RecordLedgerOperation("deposit", false)

	log.Ctx(ctx).Info().
		Str("staker_address", stakerAddress).
		Stringer("amount", record.Amount).
		Msg("Stake created")
	return record, nil
}

// Withdraw closes a matured stake, paying principal plus the solvency-capped
// reward, and moves the stake document into the history journal.
func (s *Service) Withdraw(ctx context.Context, stakerAddress string) (*ledger.Withdrawal, error) {
	withdrawal, err := s.ledger.Withdraw(ctx, stakerAddress)
	if err != nil {
		metrics.RecordLedgerOperation("withdraw", true)
		return nil, err
	}

	s.closeStakeRecords(ctx, stakerAddress, withdrawal, types.StateWithdrawn)

	s.emitEvent(ctx, events.New(types.EventStakeWithdrawn, events.StakeWithdrawn{
		StakerAddress: stakerAddress,
		Principal:     withdrawal.Principal.String(),
		RewardPaid:    withdrawal.Reward.String(),
		RewardAccrued: withdrawal.RewardAccrued.String(),
		StartTime:     withdrawal.StartTime,
		CloseTime:     s.now().UTC(),
	}))
	metrics.RecordLedgerOperation("withdraw", false)

	log.Ctx(ctx).Info().
		Str("staker_address", stakerAddress).
		Stringer("principal", withdrawal.Principal).
		Stringer("reward_paid", withdrawal.Reward).
		Msg("Stake withdrawn")
	return withdrawal, nil
}

// EmergencyWithdraw closes a stake at any time, returning only the
// principal and forfeiting all accrued reward.
func (s *Service) EmergencyWithdraw(ctx context.Context, stakerAddress string) (*ledger.Withdrawal, error) {
	withdrawal, err := s.ledger.EmergencyWithdraw(ctx, stakerAddress)
	if err != nil {
		metrics.RecordLedgerOperation("emergency_withdraw", true)
		return nil, err
	}

	s.closeStakeRecords(ctx, stakerAddress, withdrawal, types.StateEmergencyWithdrawn)

	s.emitEvent(ctx, events.New(types.EventStakeEmergencyWithdrawn, events.StakeEmergencyWithdrawn{
		StakerAddress:   stakerAddress,
		Principal:       withdrawal.Principal.String(),
		RewardForfeited: withdrawal.RewardAccrued.String(),
		StartTime:       withdrawal.StartTime,
		CloseTime:       s.now().UTC(),
	}))
	metrics.RecordLedgerOperation("emergency_withdraw", false)

	log.Ctx(ctx).Info().
		Str("staker_address", stakerAddress).
		Stringer("principal", withdrawal.Principal).
		Stringer("reward_forfeited", withdrawal.RewardAccrued).
		Msg("Stake emergency withdrawn")
	return withdrawal, nil
}

// closeStakeRecords removes the live stake document and appends the closed
// stake to the history journal. The payout already happened, so persistence
// failures here are logged rather than surfaced; the ledger remains the
// source of truth and the journal is best effort.
func (s *Service) closeStakeRecords(
	ctx context.Context,
	stakerAddress string,
	withdrawal *ledger.Withdrawal,
	closeReason types.StakeState,
) {
	if err := s.db.DeleteStake(ctx, stakerAddress); err != nil && !db.IsNotFoundError(err) {
		log.Ctx(ctx).Error().
			Err(err).
			Str("staker_address", stakerAddress).
			Msg("Failed to delete closed stake document")
	}

	historyDoc := &model.StakeHistoryDocument{
		StakerAddress: stakerAddress,
		Amount:        withdrawal.Principal.String(),
		RewardPaid:    withdrawal.Reward.String(),
		RewardAccrued: withdrawal.RewardAccrued.String(),
		StartTime:     withdrawal.StartTime,
		CloseTime:     s.now().UTC(),
		CloseReason:   closeReason,
	}
	if err := s.db.SaveStakeHistory(ctx, historyDoc); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("staker_address", stakerAddress).
			Msg("Failed to journal closed stake")
	}
}

// StakeInfo reports an account's live position.
func (s *Service) StakeInfo(stakerAddress string) ledger.StakeInfo {
	return s.ledger.GetStakeInfo(stakerAddress)
}

// StakeHistory returns a staker's closed stakes, most recent first.
func (s *Service) StakeHistory(ctx context.Context, stakerAddress string) ([]*model.StakeHistoryDocument, error) {
	return s.db.GetStakeHistoryByStaker(ctx, stakerAddress)
}

// VaultOverview is the operator-facing snapshot of the vault.
type VaultOverview struct {
	TotalStaked   math.Int
	ActiveStakes  int
	VaultBalance  math.Int
	RewardSurplus math.Int
	Params        ledger.Params
}

func (s *Service) Overview(ctx context.Context) (*VaultOverview, error) {
	balance, err := s.token.BalanceOf(ctx, s.ledger.VaultAccount())
	if err != nil {
		return nil, fmt.Errorf("failed to read vault balance: %w", err)
	}

	totalStaked := s.ledger.TotalStaked()
	return &VaultOverview{
		TotalStaked:   totalStaked,
		ActiveStakes:  len(s.ledger.Snapshot()),
		VaultBalance:  balance,
		RewardSurplus: balance.Sub(totalStaked),
		Params:        s.ledger.Params(),
	}, nil
}
