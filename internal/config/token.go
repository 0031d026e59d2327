package config

import (
	"fmt"

	"cosmossdk.io/math"
)

type TokenConfig struct {
	// InitialBalances seeds the in-memory token ledger at startup,
	// account name to integer token amount in base units.
	InitialBalances map[string]string `mapstructure:"initial-balances"`
}

func (cfg *TokenConfig) Validate() error {
	for account, raw := range cfg.InitialBalances {
		if account == "" {
			return fmt.Errorf("initial-balances contains an empty account name")
		}
		amount, ok := math.NewIntFromString(raw)
		if !ok {
			return fmt.Errorf("initial balance %q for account %s is not an integer", raw, account)
		}
		if amount.IsNegative() {
			return fmt.Errorf("initial balance for account %s must not be negative", account)
		}
	}

	return nil
}
