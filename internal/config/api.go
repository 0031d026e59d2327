package config

import "fmt"

type ApiConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// AdminKey gates the administrative endpoints. Requests must carry it in
	// the X-Admin-Key header.
	AdminKey string `mapstructure:"admin-key"`
}

func (cfg *ApiConfig) Validate() error {
	if cfg.Host == "" {
		return fmt.Errorf("api host is required")
	}
	if cfg.Port < minPort || cfg.Port > maxPort {
		return fmt.Errorf("api port must be between %d and %d", minPort, maxPort)
	}
	if cfg.AdminKey == "" {
		return fmt.Errorf("api admin-key is required")
	}

	return nil
}

func (cfg *ApiConfig) Address() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
