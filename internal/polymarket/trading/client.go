// Package trading derives API credentials and submits signed orders
// through the CLOB's authenticated endpoints. It stands in for the
// exchange's signing SDK: the diagnostic only needs the submission path
// to answer with something classifiable.
package trading

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const clobAuthMessage = "This message attests that I control the given wallet"

type Config struct {
	BaseURL       string
	ChainID       int64
	SignatureType int
	Funder        string // optional proxy wallet acting as maker
}

type Client struct {
	httpClient *http.Client
	cfg        Config
	key        *ecdsa.PrivateKey
	address    common.Address
	creds      *APICreds
	log        *slog.Logger
}

func New(cfg Config, key *ecdsa.PrivateKey, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
		key:        key,
		address:    crypto.PubkeyToAddress(key.PublicKey),
		log:        log.With("component", "trading"),
	}
}

// Address returns the EVM address controlled by the signing key.
func (c *Client) Address() common.Address {
	return c.address
}

// APICreds are the level-2 credentials the CLOB issues for a wallet.
type APICreds struct {
	Key        string `json:"apiKey"`
	Secret     string `json:"secret"`
	Passphrase string `json:"passphrase"`
}

// CreateOrDeriveAPIKey obtains API credentials for the signing wallet:
// it tries to create a fresh key and falls back to deriving the existing
// one, mirroring the exchange SDK's create-or-derive behavior.
func (c *Client) CreateOrDeriveAPIKey(ctx context.Context) (*APICreds, error) {
	headers, err := c.l1Headers()
	if err != nil {
		return nil, fmt.Errorf("couldn't build L1 auth headers: %w", err)
	}

	creds, createErr := c.fetchCreds(ctx, http.MethodPost, "/auth/api-key", headers)
	if createErr == nil {
		c.creds = creds
		return creds, nil
	}
	c.log.Debug("create api key failed, deriving instead", "error", createErr)

	creds, deriveErr := c.fetchCreds(ctx, http.MethodGet, "/auth/derive-api-key", headers)
	if deriveErr != nil {
		return nil, fmt.Errorf("create api key: %v; derive api key: %w", createErr, deriveErr)
	}

	c.creds = creds
	return creds, nil
}

func (c *Client) fetchCreds(ctx context.Context, method, path string, headers map[string]string) (*APICreds, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("couldn't create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("couldn't reach %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, body)
	}

	creds := &APICreds{}
	if err := json.Unmarshal(body, creds); err != nil {
		return nil, fmt.Errorf("couldn't parse credentials: %w", err)
	}
	if creds.Key == "" {
		return nil, fmt.Errorf("credentials response missing apiKey: %s", body)
	}

	return creds, nil
}

// l1Headers builds the wallet-signature headers used by the auth
// endpoints. The signed payload is the CLOB's EIP-712 attestation struct.
func (c *Client) l1Headers() (map[string]string, error) {
	timestamp := time.Now().Unix()

	signature, err := c.signClobAuth(timestamp, 0)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"POLY_ADDRESS":   c.address.Hex(),
		"POLY_SIGNATURE": signature,
		"POLY_TIMESTAMP": strconv.FormatInt(timestamp, 10),
		"POLY_NONCE":     "0",
	}, nil
}

func (c *Client) signClobAuth(timestamp, nonce int64) (string, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"ClobAuth": {
				{Name: "address", Type: "address"},
				{Name: "timestamp", Type: "string"},
				{Name: "nonce", Type: "uint256"},
				{Name: "message", Type: "string"},
			},
		},
		PrimaryType: "ClobAuth",
		Domain: apitypes.TypedDataDomain{
			Name:    "ClobAuthDomain",
			Version: "1",
			ChainId: math.NewHexOrDecimal256(c.cfg.ChainID),
		},
		Message: apitypes.TypedDataMessage{
			"address":   c.address.Hex(),
			"timestamp": strconv.FormatInt(timestamp, 10),
			"nonce":     math.NewHexOrDecimal256(nonce),
			"message":   clobAuthMessage,
		},
	}

	return c.signTypedData(typedData)
}

func (c *Client) signTypedData(typedData apitypes.TypedData) (string, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return "", fmt.Errorf("couldn't hash typed data: %w", err)
	}

	signature, err := crypto.Sign(hash, c.key)
	if err != nil {
		return "", fmt.Errorf("couldn't sign: %w", err)
	}
	// Ethereum convention: recovery id offset by 27.
	signature[64] += 27

	return hexutil.Encode(signature), nil
}

// l2Headers builds the HMAC headers for authenticated REST calls.
// The signed message is timestamp + method + path + body.
func (c *Client) l2Headers(method, path string, body []byte) (map[string]string, error) {
	if c.creds == nil {
		return nil, fmt.Errorf("api credentials not initialized")
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	secret, err := base64.URLEncoding.DecodeString(c.creds.Secret)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode api secret: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(timestamp + method + path))
	mac.Write(body)
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))

	return map[string]string{
		"POLY_ADDRESS":    c.address.Hex(),
		"POLY_SIGNATURE":  signature,
		"POLY_TIMESTAMP":  timestamp,
		"POLY_API_KEY":    c.creds.Key,
		"POLY_PASSPHRASE": c.creds.Passphrase,
	}, nil
}

type placeOrderRequest struct {
	Order     *SignedOrder `json:"order"`
	Owner     string       `json:"owner"`
	OrderType string       `json:"orderType"`
}

// PlaceOrderResult is the exchange's acknowledgment of a live order.
type PlaceOrderResult struct {
	Success  bool   `json:"success"`
	ErrorMsg string `json:"errorMsg"`
	OrderID  string `json:"orderID"`
	Status   string `json:"status"`
}

// PlaceOrder signs and submits a GTC order. Any rejection, whether an
// HTTP error status or an errorMsg in the body, comes back as an error
// carrying the server's text so it can be classified.
func (c *Client) PlaceOrder(ctx context.Context, args OrderArgs) (*PlaceOrderResult, error) {
	if c.creds == nil {
		return nil, fmt.Errorf("api credentials not initialized")
	}

	order, err := c.BuildSignedOrder(args)
	if err != nil {
		return nil, fmt.Errorf("couldn't build order: %w", err)
	}

	body, err := json.Marshal(placeOrderRequest{
		Order:     order,
		Owner:     c.creds.Key,
		OrderType: "GTC",
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't encode order: %w", err)
	}

	headers, err := c.l2Headers(http.MethodPost, "/order", body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("couldn't create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("couldn't reach order endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("couldn't read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("order submission returned status %d: %s", resp.StatusCode, respBody)
	}

	result := &PlaceOrderResult{}
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, fmt.Errorf("couldn't parse order response: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("order rejected: %s", result.ErrorMsg)
	}

	return result, nil
}
