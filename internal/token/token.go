package token

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cosmossdk.io/math"

	"github.com/stakewell-labs/staking-vault/internal/config"
)

var (
	// ErrInsufficientFunds is returned when a transfer would overdraw the
	// sender's balance.
	ErrInsufficientFunds = errors.New("insufficient token balance")
	// ErrInvalidAmount is returned for negative transfer or mint amounts.
	ErrInvalidAmount = errors.New("token amount must not be negative")
)

// InMemoryLedger is a process-local token ledger. It stands in for the real
// token contract in development and tests; balances live in a map guarded by
// a single mutex so concurrent transfers never observe torn state.
type InMemoryLedger struct {
	mu          sync.RWMutex
	balances    map[string]math.Int
	totalSupply math.Int
}

func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		balances:    make(map[string]math.Int),
		totalSupply: math.ZeroInt(),
	}
}

// NewInMemoryLedgerFromConfig seeds a ledger with the balances declared in
// the token section of the config file.
func NewInMemoryLedgerFromConfig(cfg *config.TokenConfig) (*InMemoryLedger, error) {
	l := NewInMemoryLedger()
	for account, raw := range cfg.InitialBalances {
		amount, ok := math.NewIntFromString(raw)
		if !ok {
			return nil, fmt.Errorf("invalid initial balance %q for account %s", raw, account)
		}
		if err := l.Mint(context.Background(), account, amount); err != nil {
			return nil, fmt.Errorf("failed to seed balance for account %s: %w", account, err)
		}
	}
	return l, nil
}

func (l *InMemoryLedger) BalanceOf(_ context.Context, account string) (math.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	balance, ok := l.balances[account]
	if !ok {
		return math.ZeroInt(), nil
	}
	return balance, nil
}

func (l *InMemoryLedger) Transfer(_ context.Context, from, to string, amount math.Int) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance, ok := l.balances[from]
	if !ok || fromBalance.LT(amount) {
		return fmt.Errorf("%w: account %s holds %s, needs %s",
			ErrInsufficientFunds, from, l.balanceLocked(from), amount)
	}

	l.balances[from] = fromBalance.Sub(amount)
	l.balances[to] = l.balanceLocked(to).Add(amount)
	return nil
}

func (l *InMemoryLedger) Mint(_ context.Context, to string, amount math.Int) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[to] = l.balanceLocked(to).Add(amount)
	l.totalSupply = l.totalSupply.Add(amount)
	return nil
}

func (l *InMemoryLedger) TotalSupply(_ context.Context) (math.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.totalSupply, nil
}

// balanceLocked reads a balance while the caller already holds the mutex.
func (l *InMemoryLedger) balanceLocked(account string) math.Int {
	if balance, ok := l.balances[account]; ok {
		return balance
	}
	return math.ZeroInt()
}
