package token

import (
	"context"

	"cosmossdk.io/math"
)

// TokenInterface is the fungible-token collaborator the staking vault moves
// value through. The vault never mints or burns on its own behalf; it only
// shuffles balances between staker accounts and its custody account.
type TokenInterface interface {
	BalanceOf(ctx context.Context, account string) (math.Int, error)
	Transfer(ctx context.Context, from, to string, amount math.Int) error
	Mint(ctx context.Context, to string, amount math.Int) error
	TotalSupply(ctx context.Context) (math.Int, error)
}
