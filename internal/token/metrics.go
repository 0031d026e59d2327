package token

import (
	"context"
	"time"

	"cosmossdk.io/math"

	"github.com/stakewell-labs/staking-vault/internal/observability/metrics"
)

type tokenClientWithMetrics struct {
	token TokenInterface
}

func NewTokenClientWithMetrics(token TokenInterface) *tokenClientWithMetrics {
	return &tokenClientWithMetrics{token: token}
}

func (t *tokenClientWithMetrics) BalanceOf(ctx context.Context, account string) (math.Int, error) {
	return runTokenClientMethodWithMetrics("BalanceOf", func() (math.Int, error) {
		return t.token.BalanceOf(ctx, account)
	})
}

func (t *tokenClientWithMetrics) Transfer(ctx context.Context, from, to string, amount math.Int) error {
	// auxiliary type so that runTokenClientMethodWithMetrics, which always
	// returns 2 values, can wrap an error-only method
	type zero struct{}
	_, err := runTokenClientMethodWithMetrics[zero]("Transfer", func() (zero, error) {
		return zero{}, t.token.Transfer(ctx, from, to, amount)
	})

	return err
}

func (t *tokenClientWithMetrics) Mint(ctx context.Context, to string, amount math.Int) error {
	type zero struct{}
	_, err := runTokenClientMethodWithMetrics[zero]("Mint", func() (zero, error) {
		return zero{}, t.token.Mint(ctx, to, amount)
	})

	return err
}

func (t *tokenClientWithMetrics) TotalSupply(ctx context.Context) (math.Int, error) {
	return runTokenClientMethodWithMetrics("TotalSupply", func() (math.Int, error) {
		return t.token.TotalSupply(ctx)
	})
}

func runTokenClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordTokenClientLatency(duration, method, err != nil)
	return v, err
}
