package services

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/db/model"
	"github.com/stakewell-labs/staking-vault/internal/events"
	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
	"github.com/stakewell-labs/staking-vault/internal/types"
)

// SetRewardRate updates the annual reward rate. The caller was already
// authorized at the API boundary; actor is recorded for the audit journal.
func (s *Service) SetRewardRate(ctx context.Context, actor string, rateBps uint32) error {
	prev, err := s.ledger.SetRewardRate(rateBps)
	if err != nil {
		metrics.RecordLedgerOperation("set_reward_rate", true)
		return err
	}

	s.journalParamEvent(ctx, &model.ParamEventDocument{
		EventType: types.EventRewardRateUpdated.String(),
		OldValue:  strconv.FormatUint(uint64(prev), 10),
		NewValue:  strconv.FormatUint(uint64(rateBps), 10),
		Actor:     actor,
	})
	s.emitEvent(ctx, events.New(types.EventRewardRateUpdated, events.RewardRateUpdated{
		OldRateBps: prev,
		NewRateBps: rateBps,
	}))
	metrics.RecordLedgerOperation("set_reward_rate", false)

	log.Ctx(ctx).Info().
		Uint32("old_rate_bps", prev).
		Uint32("new_rate_bps", rateBps).
		Msg("Reward rate updated")
	return nil
}

// SetLockDuration updates the minimum stake duration.
func (s *Service) SetLockDuration(ctx context.Context, actor string, d time.Duration) error {
	prev, err := s.ledger.SetLockDuration(d)
	if err != nil {
		metrics.RecordLedgerOperation("set_lock_duration", true)
		return err
	}

	s.journalParamEvent(ctx, &model.ParamEventDocument{
		EventType: types.EventLockDurationUpdated.String(),
		OldValue:  strconv.FormatInt(int64(prev.Seconds()), 10),
		NewValue:  strconv.FormatInt(int64(d.Seconds()), 10),
		Actor:     actor,
	})
	s.emitEvent(ctx, events.New(types.EventLockDurationUpdated, events.LockDurationUpdated{
		OldDurationSeconds: int64(prev.Seconds()),
		NewDurationSeconds: int64(d.Seconds()),
	}))
	metrics.RecordLedgerOperation("set_lock_duration", false)

	log.Ctx(ctx).Info().
		Dur("old_lock_duration", prev).
		Dur("new_lock_duration", d).
		Msg("Lock duration updated")
	return nil
}

// FundRewards pulls amount from the admin account into vault custody,
// growing the pool rewards are paid from.
func (s *Service) FundRewards(ctx context.Context, funder string, amount math.Int) error {
	if err := s.ledger.FundRewards(ctx, funder, amount); err != nil {
		metrics.RecordLedgerOperation("fund_rewards", true)
		return err
	}

	s.journalParamEvent(ctx, &model.ParamEventDocument{
		EventType: types.EventRewardsFunded.String(),
		NewValue:  amount.String(),
		Actor:     funder,
	})
	s.emitEvent(ctx, events.New(types.EventRewardsFunded, events.RewardsFunded{
		Funder: funder,
		Amount: amount.String(),
	}))
	metrics.RecordLedgerOperation("fund_rewards", false)

	log.Ctx(ctx).Info().
		Str("funder", funder).
		Stringer("amount", amount).
		Msg("Reward pool funded")
	return nil
}

// WithdrawExcess sends part of the reward-pool surplus to the recipient.
// Principal owed to stakers can never leave through this path.
func (s *Service) WithdrawExcess(ctx context.Context, actor, recipient string, amount math.Int) error {
	if err := s.ledger.WithdrawExcess(ctx, recipient, amount); err != nil {
		metrics.RecordLedgerOperation("withdraw_excess", true)
		return err
	}

	s.journalParamEvent(ctx, &model.ParamEventDocument{
		EventType: types.EventExcessWithdrawn.String(),
		NewValue:  amount.String(),
		Actor:     actor,
	})
	s.emitEvent(ctx, events.New(types.EventExcessWithdrawn, events.ExcessWithdrawn{
		Recipient: recipient,
		Amount:    amount.String(),
	}))
	metrics.RecordLedgerOperation("withdraw_excess", false)

	log.Ctx(ctx).Info().
		Str("recipient", recipient).
		Stringer("amount", amount).
		Msg("Excess withdrawn from reward pool")
	return nil
}

// journalParamEvent appends an administrative change to the audit journal.
// The change already took effect, so a journaling failure is logged rather
// than surfaced.
func (s *Service) journalParamEvent(ctx context.Context, doc *model.ParamEventDocument) {
	doc.Timestamp = s.now().UTC()
	if err := s.db.SaveParamEvent(ctx, doc); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Str("event_type", doc.EventType).
			Msg("Failed to journal parameter event")
	}
}

// ParamEvents returns the most recent administrative changes.
func (s *Service) ParamEvents(ctx context.Context, limit int64) ([]*model.ParamEventDocument, error) {
	return s.db.GetParamEvents(ctx, limit)
}
