package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell-labs/staking-vault/internal/types"
)

func TestNew(t *testing.T) {
	payload := StakeCreated{
		StakerAddress: "alice",
		Amount:        "1000000000000000000000",
		StartTime:     time.Now().UTC(),
	}

	first := New(types.EventStakeCreated, payload)
	second := New(types.EventStakeCreated, payload)

	assert.NotEmpty(t, first.EventID)
	assert.NotEqual(t, first.EventID, second.EventID)
	assert.Equal(t, types.EventStakeCreated, first.EventType)
	assert.False(t, first.Timestamp.IsZero())
}

func TestEnvelopeJSON(t *testing.T) {
	startTime := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	event := New(types.EventStakeWithdrawn, StakeWithdrawn{
		StakerAddress: "alice",
		Principal:     "1000000000000000000000",
		RewardPaid:    "100000000000000000000",
		RewardAccrued: "100000000000000000000",
		StartTime:     startTime,
		CloseTime:     startTime.Add(365 * 24 * time.Hour),
	})

	buf, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded struct {
		EventID   string         `json:"event_id"`
		EventType string         `json:"event_type"`
		Timestamp time.Time      `json:"timestamp"`
		Payload   StakeWithdrawn `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(buf, &decoded))

	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, types.EventStakeWithdrawn.String(), decoded.EventType)
	assert.Equal(t, "1000000000000000000000", decoded.Payload.Principal)
	assert.Equal(t, "100000000000000000000", decoded.Payload.RewardPaid)
	assert.True(t, decoded.Payload.StartTime.Equal(startTime))
}
