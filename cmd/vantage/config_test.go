package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := readConfig("")
	if err != nil {
		t.Fatalf("readConfig failed: %v", err)
	}

	if cfg.Polymarket.ClobURL != defaultClobURL {
		t.Errorf("clob_url = %q, want default", cfg.Polymarket.ClobURL)
	}
	if cfg.Polymarket.GammaURL != defaultGammaURL {
		t.Errorf("gamma_url = %q, want default", cfg.Polymarket.GammaURL)
	}
	if cfg.Polymarket.ChainID != defaultChainID {
		t.Errorf("chain_id = %d, want %d", cfg.Polymarket.ChainID, defaultChainID)
	}
	if cfg.Polymarket.FallbackTokenID == "" {
		t.Error("fallback_token_id default must not be empty")
	}
}

func TestReadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
log_level: debug
polymarket:
  clob_url: http://localhost:8080
  chain_id: 80002
timeouts:
  call: 3s
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := readConfig(path)
	if err != nil {
		t.Fatalf("readConfig failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	if cfg.Polymarket.ClobURL != "http://localhost:8080" {
		t.Errorf("clob_url = %q, want override", cfg.Polymarket.ClobURL)
	}
	if cfg.Polymarket.ChainID != 80002 {
		t.Errorf("chain_id = %d, want 80002", cfg.Polymarket.ChainID)
	}
	if cfg.Timeouts.Call.Duration() != 3*time.Second {
		t.Errorf("timeouts.call = %v, want 3s", cfg.Timeouts.Call.Duration())
	}
	// Unset fields still pick up defaults.
	if cfg.Polymarket.GammaURL != defaultGammaURL {
		t.Errorf("gamma_url = %q, want default", cfg.Polymarket.GammaURL)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := readConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidateConfigRejectsBadSignatureType(t *testing.T) {
	cfg := &config{}
	applyDefaults(cfg)
	cfg.Polymarket.SignatureType = 3

	if err := validateConfig(cfg); err == nil {
		t.Error("expected an error for signature_type 3")
	}
}
