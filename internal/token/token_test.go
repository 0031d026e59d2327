package token

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func requireIntEq(t *testing.T, expected int64, actual math.Int) {
	t.Helper()
	require.True(t, math.NewInt(expected).Equal(actual), "expected %d, got %s", expected, actual)
}

func TestInMemoryLedgerMintAndBalance(t *testing.T) {
	ctx := context.Background()
	ledger := NewInMemoryLedger()

	balance, err := ledger.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	require.True(t, balance.IsZero())

	require.NoError(t, ledger.Mint(ctx, "alice", math.NewInt(500)))

	balance, err = ledger.BalanceOf(ctx, "alice")
	require.NoError(t, err)
	requireIntEq(t, 500, balance)

	supply, err := ledger.TotalSupply(ctx)
	require.NoError(t, err)
	requireIntEq(t, 500, supply)
}

func TestInMemoryLedgerTransfer(t *testing.T) {
	tests := []struct {
		name         string
		fromBalance  int64
		amount       int64
		expectedErr  error
		expectedFrom int64
		expectedTo   int64
	}{
		{
			name:         "full balance moves",
			fromBalance:  1000,
			amount:       1000,
			expectedFrom: 0,
			expectedTo:   1000,
		},
		{
			name:         "partial transfer",
			fromBalance:  1000,
			amount:       300,
			expectedFrom: 700,
			expectedTo:   300,
		},
		{
			name:         "zero amount is a no-op",
			fromBalance:  1000,
			amount:       0,
			expectedFrom: 1000,
			expectedTo:   0,
		},
		{
			name:         "overdraw is rejected",
			fromBalance:  100,
			amount:       101,
			expectedErr:  ErrInsufficientFunds,
			expectedFrom: 100,
			expectedTo:   0,
		},
		{
			name:         "negative amount is rejected",
			fromBalance:  100,
			amount:       -1,
			expectedErr:  ErrInvalidAmount,
			expectedFrom: 100,
			expectedTo:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			ledger := NewInMemoryLedger()
			require.NoError(t, ledger.Mint(ctx, "alice", math.NewInt(tt.fromBalance)))

			err := ledger.Transfer(ctx, "alice", "bob", math.NewInt(tt.amount))
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			fromBalance, err := ledger.BalanceOf(ctx, "alice")
			require.NoError(t, err)
			requireIntEq(t, tt.expectedFrom, fromBalance)

			toBalance, err := ledger.BalanceOf(ctx, "bob")
			require.NoError(t, err)
			requireIntEq(t, tt.expectedTo, toBalance)
		})
	}
}

func TestInMemoryLedgerTransferFromUnknownAccount(t *testing.T) {
	ctx := context.Background()
	ledger := NewInMemoryLedger()

	err := ledger.Transfer(ctx, "ghost", "bob", math.NewInt(1))
	require.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestInMemoryLedgerTransferPreservesSupply(t *testing.T) {
	ctx := context.Background()
	ledger := NewInMemoryLedger()
	require.NoError(t, ledger.Mint(ctx, "alice", math.NewInt(700)))
	require.NoError(t, ledger.Mint(ctx, "bob", math.NewInt(300)))

	require.NoError(t, ledger.Transfer(ctx, "alice", "bob", math.NewInt(250)))
	require.NoError(t, ledger.Transfer(ctx, "bob", "carol", math.NewInt(100)))

	supply, err := ledger.TotalSupply(ctx)
	require.NoError(t, err)
	requireIntEq(t, 1000, supply)
}

func TestInMemoryLedgerMintNegative(t *testing.T) {
	ctx := context.Background()
	ledger := NewInMemoryLedger()

	err := ledger.Mint(ctx, "alice", math.NewInt(-5))
	require.ErrorIs(t, err, ErrInvalidAmount)
}
