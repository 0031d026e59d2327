package config

import (
	"errors"
	"time"
)

const defaultStatsPollingInterval = 5 * time.Minute

type PollerConfig struct {
	UnlockCheckerPollingInterval time.Duration `mapstructure:"unlock-checker-polling-interval"`
	UnlockedStakesLimit          int64         `mapstructure:"unlocked-stakes-limit"`
	StatsPollingInterval         time.Duration `mapstructure:"stats-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.UnlockCheckerPollingInterval <= 0 {
		return errors.New("unlock-checker-polling-interval must be positive")
	}

	if cfg.UnlockedStakesLimit <= 0 {
		return errors.New("unlocked-stakes-limit must be positive")
	}

	if cfg.StatsPollingInterval <= 0 {
		cfg.StatsPollingInterval = defaultStatsPollingInterval
	}

	return nil
}
