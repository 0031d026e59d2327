package config

import (
	"fmt"
	"time"
)

// maxRewardRateBps is 100% annual interest, the top of the valid range.
const maxRewardRateBps = 10000

type LedgerConfig struct {
	// VaultAccount is the token account holding staked principal and the
	// reward pool.
	VaultAccount string `mapstructure:"vault-account"`
	// AdminAccount funds rewards and receives withdrawn excess by default.
	AdminAccount  string        `mapstructure:"admin-account"`
	LockDuration  time.Duration `mapstructure:"lock-duration"`
	RewardRateBps uint32        `mapstructure:"reward-rate-bps"`
}

func (cfg *LedgerConfig) Validate() error {
	if cfg.VaultAccount == "" {
		return fmt.Errorf("vault-account is required")
	}
	if cfg.AdminAccount == "" {
		return fmt.Errorf("admin-account is required")
	}
	if cfg.VaultAccount == cfg.AdminAccount {
		return fmt.Errorf("vault-account and admin-account must differ")
	}
	if cfg.LockDuration <= 0 {
		return fmt.Errorf("lock-duration must be positive")
	}
	if cfg.RewardRateBps == 0 || cfg.RewardRateBps > maxRewardRateBps {
		return fmt.Errorf("reward-rate-bps must be between 1 and %d", maxRewardRateBps)
	}

	return nil
}
