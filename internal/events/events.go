package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stakewell-labs/staking-vault/internal/types"
)

// Envelope wraps every published event with an identity and a timestamp so
// downstream consumers can deduplicate and order them.
type Envelope struct {
	EventID   string          `json:"event_id"`
	EventType types.EventType `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   any             `json:"payload"`
}

// New wraps payload into an Envelope with a fresh event ID.
func New(eventType types.EventType, payload any) *Envelope {
	return &Envelope{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// Emitter publishes events for external indexers and UIs. Publishing is
// observability only: implementations report failures through the returned
// error but callers must not fail the underlying operation on it.
type Emitter interface {
	Emit(ctx context.Context, event *Envelope) error
	Shutdown()
}

// NoopEmitter drops every event. Used when no queue is configured.
type NoopEmitter struct{}

func (NoopEmitter) Emit(_ context.Context, _ *Envelope) error { return nil }

func (NoopEmitter) Shutdown() {}

// Amounts travel as decimal strings; they routinely exceed what JSON
// numbers can carry losslessly.

type StakeCreated struct {
	StakerAddress string    `json:"staker_address"`
	Amount        string    `json:"amount"`
	StartTime     time.Time `json:"start_time"`
}

type StakeUnlocked struct {
	StakerAddress string    `json:"staker_address"`
	Amount        string    `json:"amount"`
	StartTime     time.Time `json:"start_time"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

type StakeWithdrawn struct {
	StakerAddress string    `json:"staker_address"`
	Principal     string    `json:"principal"`
	RewardPaid    string    `json:"reward_paid"`
	RewardAccrued string    `json:"reward_accrued"`
	StartTime     time.Time `json:"start_time"`
	CloseTime     time.Time `json:"close_time"`
}

type StakeEmergencyWithdrawn struct {
	StakerAddress   string    `json:"staker_address"`
	Principal       string    `json:"principal"`
	RewardForfeited string    `json:"reward_forfeited"`
	StartTime       time.Time `json:"start_time"`
	CloseTime       time.Time `json:"close_time"`
}

type RewardRateUpdated struct {
	OldRateBps uint32 `json:"old_rate_bps"`
	NewRateBps uint32 `json:"new_rate_bps"`
}

type LockDurationUpdated struct {
	OldDurationSeconds int64 `json:"old_duration_seconds"`
	NewDurationSeconds int64 `json:"new_duration_seconds"`
}

type RewardsFunded struct {
	Funder string `json:"funder"`
	Amount string `json:"amount"`
}

type ExcessWithdrawn struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}
