package config

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Secrets come only from the process environment, never from the config
// file. An unset private key selects unauthenticated mode.
type Secrets struct {
	PrivateKey ECDSAPrivateKey `env:"POLYMARKET_PRIVATE_KEY"`
	Funder     string          `env:"POLYMARKET_FUNDER"`
}

func LoadSecrets() (*Secrets, error) {
	s := &Secrets{}
	if err := env.Parse(s); err != nil {
		return nil, fmt.Errorf("couldn't parse environment: %w", err)
	}
	return s, nil
}

// ECDSAPrivateKey wraps *ecdsa.PrivateKey and decodes from a hex-encoded
// secp256k1 key, with or without a 0x prefix.
type ECDSAPrivateKey struct {
	*ecdsa.PrivateKey
}

func (k *ECDSAPrivateKey) UnmarshalText(data []byte) error {
	encoded := strings.TrimSpace(string(data))
	if encoded == "" {
		return nil
	}
	encoded = strings.TrimPrefix(encoded, "0x")

	key, err := crypto.HexToECDSA(encoded)
	if err != nil {
		return fmt.Errorf("decode ECDSA private key: %w", err)
	}

	k.PrivateKey = key
	return nil
}

func (k ECDSAPrivateKey) Configured() bool {
	return k.PrivateKey != nil
}

// Address derives the EVM address controlled by the key.
func (k ECDSAPrivateKey) Address() common.Address {
	if k.PrivateKey == nil {
		return common.Address{}
	}
	return crypto.PubkeyToAddress(k.PrivateKey.PublicKey)
}
