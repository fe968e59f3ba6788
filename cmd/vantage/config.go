package main

import (
	"fmt"
	"os"

	configtypes "github.com/daszybak/polymarket_vantage/internal/config"
	"go.yaml.in/yaml/v4"
)

const (
	defaultClobURL      = "https://clob.polymarket.com"
	defaultGammaURL     = "https://gamma-api.polymarket.com"
	defaultWebsocketURL = "wss://ws-subscriptions-clob.polymarket.com/ws/market"
	defaultChainID      = 137

	// One side of a long-lived, high-volume market. Used as the order
	// target when book discovery comes up empty.
	defaultFallbackTokenID = "21742633143463906290569050155826241533067272736897614950488156847949938836455"
)

type config struct {
	LogLevel   string `yaml:"log_level"` // debug, info, warn, error
	Polymarket struct {
		ClobURL         string `yaml:"clob_url"`
		GammaURL        string `yaml:"gamma_url"`
		WebsocketURL    string `yaml:"websocket_url"`
		ChainID         int64  `yaml:"chain_id"`
		SignatureType   int    `yaml:"signature_type"`
		FallbackTokenID string `yaml:"fallback_token_id"`
	} `yaml:"polymarket"`
	Timeouts struct {
		Call configtypes.Duration `yaml:"call"`
		Book configtypes.Duration `yaml:"book"`
	} `yaml:"timeouts"`
}

// readConfig loads the optional yaml config. An empty path runs with the
// production defaults.
func readConfig(configPath string) (*config, error) {
	cfg := &config{}

	if configPath != "" {
		rawConfig, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("couldn't read file %s: %w", configPath, err)
		}
		if err = yaml.Unmarshal(rawConfig, cfg); err != nil {
			return nil, fmt.Errorf("couldn't parse config: %w", err)
		}
	}

	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("couldn't validate config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Polymarket.ClobURL == "" {
		cfg.Polymarket.ClobURL = defaultClobURL
	}
	if cfg.Polymarket.GammaURL == "" {
		cfg.Polymarket.GammaURL = defaultGammaURL
	}
	if cfg.Polymarket.WebsocketURL == "" {
		cfg.Polymarket.WebsocketURL = defaultWebsocketURL
	}
	if cfg.Polymarket.ChainID == 0 {
		cfg.Polymarket.ChainID = defaultChainID
	}
	if cfg.Polymarket.FallbackTokenID == "" {
		cfg.Polymarket.FallbackTokenID = defaultFallbackTokenID
	}
}

func validateConfig(cfg *config) error {
	if cfg.Polymarket.ClobURL == "" {
		return fmt.Errorf("polymarket.clob_url is required")
	}
	if cfg.Polymarket.GammaURL == "" {
		return fmt.Errorf("polymarket.gamma_url is required")
	}
	if cfg.Polymarket.ChainID <= 0 {
		return fmt.Errorf("polymarket.chain_id must be greater than 0")
	}
	if cfg.Polymarket.SignatureType < 0 || cfg.Polymarket.SignatureType > 2 {
		return fmt.Errorf("polymarket.signature_type must be 0 (EOA), 1 (email/magic proxy) or 2 (gnosis safe)")
	}
	if cfg.Timeouts.Call.Duration() < 0 {
		return fmt.Errorf("timeouts.call must not be negative")
	}
	if cfg.Timeouts.Book.Duration() < 0 {
		return fmt.Errorf("timeouts.book must not be negative")
	}
	return nil
}
