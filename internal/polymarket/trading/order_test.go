package trading

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Throwaway key for tests only.
const testKeyHex = "c87509a1c067bbde78beb793e6fa76530b6382a4c0241e5e4a9ec0a0f44dc0d3"

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	key, err := crypto.HexToECDSA(testKeyHex)
	require.NoError(t, err)
	if cfg.ChainID == 0 {
		cfg.ChainID = 137
	}
	return New(cfg, key, slog.New(slog.DiscardHandler))
}

func TestOrderAmounts(t *testing.T) {
	tests := []struct {
		name      string
		args      OrderArgs
		wantMaker string
		wantTaker string
		wantErr   bool
	}{
		{
			name:      "buy spends collateral",
			args:      OrderArgs{Price: decimal.New(5, -1), Size: decimal.New(10, 0), Side: SideBuy},
			wantMaker: "5000000",
			wantTaker: "10000000",
		},
		{
			name:      "sell offers shares",
			args:      OrderArgs{Price: decimal.New(25, -2), Size: decimal.New(4, 0), Side: SideSell},
			wantMaker: "4000000",
			wantTaker: "1000000",
		},
		{
			name:      "sub-unit result truncates",
			args:      OrderArgs{Price: decimal.New(333333, -6), Size: decimal.New(3, 0), Side: SideBuy},
			wantMaker: "999999",
			wantTaker: "3000000",
		},
		{
			name:    "zero price",
			args:    OrderArgs{Price: decimal.Zero, Size: decimal.New(10, 0), Side: SideBuy},
			wantErr: true,
		},
		{
			name:    "negative size",
			args:    OrderArgs{Price: decimal.New(5, -1), Size: decimal.New(-1, 0), Side: SideBuy},
			wantErr: true,
		},
		{
			name:    "unknown side",
			args:    OrderArgs{Price: decimal.New(5, -1), Size: decimal.New(1, 0), Side: "HOLD"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maker, taker, err := orderAmounts(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMaker, maker)
			assert.Equal(t, tt.wantTaker, taker)
		})
	}
}

func TestBuildSignedOrder(t *testing.T) {
	client := newTestClient(t, Config{})

	order, err := client.BuildSignedOrder(OrderArgs{
		TokenID: "111",
		Price:   decimal.New(5, -1),
		Size:    decimal.New(10, 0),
		Side:    SideBuy,
	})
	require.NoError(t, err)

	assert.Equal(t, client.Address().Hex(), order.Maker)
	assert.Equal(t, client.Address().Hex(), order.Signer)
	assert.Equal(t, zeroAddress, order.Taker)
	assert.Equal(t, "111", order.TokenID)
	assert.Equal(t, "5000000", order.MakerAmount)
	assert.Equal(t, "10000000", order.TakerAmount)
	assert.Equal(t, "0", order.Expiration)
	assert.Equal(t, "0", order.Nonce)
	assert.Equal(t, SideBuy, order.Side)

	require.True(t, strings.HasPrefix(order.Signature, "0x"))
	// 65-byte signature hex encoded with a 0x prefix.
	assert.Len(t, order.Signature, 132)
}

func TestBuildSignedOrderFunderActsAsMaker(t *testing.T) {
	funder := "0x00000000000000000000000000000000000000Aa"
	client := newTestClient(t, Config{Funder: funder})

	order, err := client.BuildSignedOrder(OrderArgs{
		TokenID: "111",
		Price:   decimal.New(5, -1),
		Size:    decimal.New(1, 0),
		Side:    SideBuy,
	})
	require.NoError(t, err)

	assert.Equal(t, funder, order.Maker)
	assert.Equal(t, client.Address().Hex(), order.Signer)
}

func TestBuildSignedOrderUnknownChain(t *testing.T) {
	client := newTestClient(t, Config{ChainID: 1})

	_, err := client.BuildSignedOrder(OrderArgs{
		TokenID: "111",
		Price:   decimal.New(5, -1),
		Size:    decimal.New(1, 0),
		Side:    SideBuy,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no exchange contract")
}

func TestBuildSignedOrderSignaturesDiffer(t *testing.T) {
	client := newTestClient(t, Config{})
	args := OrderArgs{
		TokenID: "111",
		Price:   decimal.New(5, -1),
		Size:    decimal.New(1, 0),
		Side:    SideBuy,
	}

	first, err := client.BuildSignedOrder(args)
	require.NoError(t, err)
	second, err := client.BuildSignedOrder(args)
	require.NoError(t, err)

	// A fresh salt must produce a fresh signature.
	assert.NotEqual(t, first.Salt, second.Salt)
	assert.NotEqual(t, first.Signature, second.Signature)
}
