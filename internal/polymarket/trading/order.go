package trading

import (
	"fmt"
	"math/rand/v2"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/shopspring/decimal"
)

const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	zeroAddress = "0x0000000000000000000000000000000000000000"

	// Collateral and outcome tokens both use 6 decimal places.
	baseUnitDecimals = 6
)

// exchangeContracts maps chain id to the CTF Exchange verifying contract.
var exchangeContracts = map[int64]string{
	137:   "0x4bFb41d5B3570DeFd03C39a9A4D8dE6Bd8B8982E", // Polygon mainnet
	80002: "0xdFE02Eb6733538f8Ea35D585af8DE5958AD99E40", // Amoy testnet
}

// OrderArgs describes the order to sign: a token, a limit price in
// collateral per share, a share quantity, and a side.
type OrderArgs struct {
	TokenID string
	Price   decimal.Decimal
	Size    decimal.Decimal
	Side    string
}

// SignedOrder is the wire form of a CTF Exchange order. The uint256
// fields travel as decimal strings.
type SignedOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          string `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// BuildSignedOrder constructs and signs a GTC order without submitting it.
func (c *Client) BuildSignedOrder(args OrderArgs) (*SignedOrder, error) {
	contract, ok := exchangeContracts[c.cfg.ChainID]
	if !ok {
		return nil, fmt.Errorf("no exchange contract known for chain %d", c.cfg.ChainID)
	}

	sideValue, err := sideToValue(args.Side)
	if err != nil {
		return nil, err
	}

	makerAmount, takerAmount, err := orderAmounts(args)
	if err != nil {
		return nil, err
	}

	maker := c.cfg.Funder
	if maker == "" {
		maker = c.address.Hex()
	}

	salt := rand.Int64()

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Order": {
				{Name: "salt", Type: "uint256"},
				{Name: "maker", Type: "address"},
				{Name: "signer", Type: "address"},
				{Name: "taker", Type: "address"},
				{Name: "tokenId", Type: "uint256"},
				{Name: "makerAmount", Type: "uint256"},
				{Name: "takerAmount", Type: "uint256"},
				{Name: "expiration", Type: "uint256"},
				{Name: "nonce", Type: "uint256"},
				{Name: "feeRateBps", Type: "uint256"},
				{Name: "side", Type: "uint8"},
				{Name: "signatureType", Type: "uint8"},
			},
		},
		PrimaryType: "Order",
		Domain: apitypes.TypedDataDomain{
			Name:              "Polymarket CTF Exchange",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(c.cfg.ChainID),
			VerifyingContract: contract,
		},
		Message: apitypes.TypedDataMessage{
			"salt":          math.NewHexOrDecimal256(salt),
			"maker":         maker,
			"signer":        c.address.Hex(),
			"taker":         zeroAddress,
			"tokenId":       args.TokenID,
			"makerAmount":   makerAmount,
			"takerAmount":   takerAmount,
			"expiration":    "0",
			"nonce":         "0",
			"feeRateBps":    "0",
			"side":          math.NewHexOrDecimal256(sideValue),
			"signatureType": math.NewHexOrDecimal256(int64(c.cfg.SignatureType)),
		},
	}

	signature, err := c.signTypedData(typedData)
	if err != nil {
		return nil, err
	}

	return &SignedOrder{
		Salt:          salt,
		Maker:         maker,
		Signer:        c.address.Hex(),
		Taker:         zeroAddress,
		TokenID:       args.TokenID,
		MakerAmount:   makerAmount,
		TakerAmount:   takerAmount,
		Expiration:    "0",
		Nonce:         "0",
		FeeRateBps:    "0",
		Side:          args.Side,
		SignatureType: c.cfg.SignatureType,
		Signature:     signature,
	}, nil
}

func sideToValue(side string) (int64, error) {
	switch side {
	case SideBuy:
		return 0, nil
	case SideSell:
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown side %q", side)
	}
}

// orderAmounts converts price and size into base-unit maker and taker
// amounts. A BUY spends price*size collateral for size shares; a SELL is
// the inverse.
func orderAmounts(args OrderArgs) (maker, taker string, err error) {
	if args.Price.IsZero() || args.Price.IsNegative() {
		return "", "", fmt.Errorf("price must be positive, got %s", args.Price)
	}
	if args.Size.IsZero() || args.Size.IsNegative() {
		return "", "", fmt.Errorf("size must be positive, got %s", args.Size)
	}

	collateral := args.Price.Mul(args.Size).Shift(baseUnitDecimals).Truncate(0)
	shares := args.Size.Shift(baseUnitDecimals).Truncate(0)

	switch args.Side {
	case SideBuy:
		return collateral.String(), shares.String(), nil
	case SideSell:
		return shares.String(), collateral.String(), nil
	default:
		return "", "", fmt.Errorf("unknown side %q", args.Side)
	}
}
