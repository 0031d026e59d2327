package ledger

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestAccrueReward(t *testing.T) {
	tests := []struct {
		name     string
		amount   math.Int
		rateBps  uint32
		elapsed  time.Duration
		expected math.Int
	}{
		{
			name:     "10 percent over one year",
			amount:   math.NewIntWithDecimal(1000, 18),
			rateBps:  1000,
			elapsed:  31536000 * time.Second,
			expected: math.NewIntWithDecimal(100, 18),
		},
		{
			name:     "10 percent over half a year",
			amount:   math.NewIntWithDecimal(1000, 18),
			rateBps:  1000,
			elapsed:  15768000 * time.Second,
			expected: math.NewIntWithDecimal(50, 18),
		},
		{
			name:     "full rate over one year returns the stake",
			amount:   math.NewInt(500),
			rateBps:  10000,
			elapsed:  31536000 * time.Second,
			expected: math.NewInt(500),
		},
		{
			name:     "5 percent over one day floors the exact quotient",
			amount:   math.NewIntWithDecimal(1, 18),
			rateBps:  500,
			elapsed:  24 * time.Hour,
			expected: math.NewInt(136986301369863),
		},
		{
			name:     "fractional result floors to zero",
			amount:   math.NewInt(1000),
			rateBps:  1,
			elapsed:  31536000 * time.Second,
			expected: math.NewInt(0),
		},
		{
			name:     "zero elapsed time earns nothing",
			amount:   math.NewIntWithDecimal(1000, 18),
			rateBps:  10000,
			elapsed:  0,
			expected: math.NewInt(0),
		},
		{
			name:     "sub-second elapsed time earns nothing",
			amount:   math.NewIntWithDecimal(1000, 18),
			rateBps:  10000,
			elapsed:  999 * time.Millisecond,
			expected: math.NewInt(0),
		},
		{
			name:     "negative elapsed time earns nothing",
			amount:   math.NewIntWithDecimal(1000, 18),
			rateBps:  10000,
			elapsed:  -time.Hour,
			expected: math.NewInt(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accrueReward(tt.amount, tt.rateBps, tt.elapsed)
			require.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

// Accrual is linear: doubling either the stake or the elapsed time doubles
// the reward when the quotient stays exact.
func TestAccrueRewardLinearity(t *testing.T) {
	amount := math.NewIntWithDecimal(250, 18)
	base := accrueReward(amount, 2000, 31536000*time.Second)

	doubledAmount := accrueReward(amount.MulRaw(2), 2000, 31536000*time.Second)
	require.True(t, base.MulRaw(2).Equal(doubledAmount))

	doubledTime := accrueReward(amount, 2000, 2*31536000*time.Second)
	require.True(t, base.MulRaw(2).Equal(doubledTime))
}

// Multiplying before dividing must not lose precision even when the stake
// is far larger than int64.
func TestAccrueRewardHugeStake(t *testing.T) {
	amount, ok := math.NewIntFromString("123456789012345678901234567890")
	require.True(t, ok)

	got := accrueReward(amount, 10000, 31536000*time.Second)
	require.True(t, amount.Equal(got), "one year at 100%% should return the full stake, got %s", got)
}
