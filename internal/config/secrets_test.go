package config

import (
	"testing"
	"time"

	"go.yaml.in/yaml/v4"
)

func TestECDSAPrivateKeyUnmarshalText(t *testing.T) {
	const keyHex = "c87509a1c067bbde78beb793e6fa76530b6382a4c0241e5e4a9ec0a0f44dc0d3"

	tests := []struct {
		name           string
		input          string
		wantConfigured bool
		wantErr        bool
	}{
		{"bare hex", keyHex, true, false},
		{"0x prefix", "0x" + keyHex, true, false},
		{"surrounding whitespace", "  " + keyHex + "\n", true, false},
		{"empty selects unauthenticated mode", "", false, false},
		{"not hex", "zzzz", false, true},
		{"truncated", keyHex[:10], false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var key ECDSAPrivateKey
			err := key.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr = %v", err, tt.wantErr)
			}
			if key.Configured() != tt.wantConfigured {
				t.Errorf("configured = %v, want %v", key.Configured(), tt.wantConfigured)
			}
		})
	}
}

func TestECDSAPrivateKeyAddress(t *testing.T) {
	var key ECDSAPrivateKey
	if got := key.Address(); got.Hex() != "0x0000000000000000000000000000000000000000" {
		t.Errorf("unconfigured key address = %s, want zero address", got.Hex())
	}

	if err := key.UnmarshalText([]byte("c87509a1c067bbde78beb793e6fa76530b6382a4c0241e5e4a9ec0a0f44dc0d3")); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := key.Address(); got.Hex() == "0x0000000000000000000000000000000000000000" {
		t.Error("configured key should derive a non-zero address")
	}
}

func TestDurationUnmarshalYAML(t *testing.T) {
	var cfg struct {
		Timeout Duration `yaml:"timeout"`
	}

	if err := yaml.Unmarshal([]byte("timeout: 5s"), &cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if cfg.Timeout.Duration() != 5*time.Second {
		t.Errorf("got %v, want 5s", cfg.Timeout.Duration())
	}

	if err := yaml.Unmarshal([]byte("timeout: soon"), &cfg); err == nil {
		t.Error("expected an error for an invalid duration")
	}
}

func TestDurationOrDefault(t *testing.T) {
	var unset Duration
	if got := unset.OrDefault(10 * time.Second); got != 10*time.Second {
		t.Errorf("got %v, want the default", got)
	}

	set := Duration(2 * time.Second)
	if got := set.OrDefault(10 * time.Second); got != 2*time.Second {
		t.Errorf("got %v, want the configured value", got)
	}
}
