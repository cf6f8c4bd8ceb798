package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cloudkitchen/dispatch/core/metrics"
)

// Config is the root configuration for the kitchen simulation.
type Config struct {
	Orders   OrdersConfig   `json:"orders"`
	Couriers CouriersConfig `json:"couriers"`
	Dispatch DispatchConfig `json:"dispatch"`
	Metrics  metrics.Config `json:"metrics"`
}

// OrdersConfig locates the order list to admit at startup.
type OrdersConfig struct {
	// Path is a JSON or YAML file holding the order list.
	Path string `json:"path"`
}

// CouriersConfig controls the synthetic courier arrival stream.
type CouriersConfig struct {
	Count           int     `json:"count"`
	MinDelaySeconds float64 `json:"min_delay_seconds"`
	MaxDelaySeconds float64 `json:"max_delay_seconds"`
	Seed            int64   `json:"seed"`
}

// DispatchConfig selects the dispatch policy.
type DispatchConfig struct {
	// Policy is "fifo" or "matched".
	Policy string `json:"policy"`
	// BusBuffer sizes the per-subscriber event channel.
	BusBuffer int `json:"bus_buffer"`
}

// SetDefaults applies sane defaults.
func (c *DispatchConfig) SetDefaults() {
	if c.Policy == "" {
		c.Policy = "fifo"
	}
	if c.BusBuffer == 0 {
		c.BusBuffer = 16
	}
}

// Validate checks mandatory fields.
func (c DispatchConfig) Validate() error {
	if c.Policy != "fifo" && c.Policy != "matched" {
		return fmt.Errorf("unknown dispatch policy %s", c.Policy)
	}
	return nil
}

// Validate checks the courier stream parameters.
func (c CouriersConfig) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("courier count must not be negative")
	}
	if c.MinDelaySeconds < 0 {
		return fmt.Errorf("courier min delay must not be negative")
	}
	if c.MaxDelaySeconds < c.MinDelaySeconds {
		return fmt.Errorf("courier max delay must not be below min delay")
	}
	return nil
}

// Load reads the configuration from a JSON or YAML file, applying optional
// K_-prefixed environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Dispatch.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Dispatch.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Couriers.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
