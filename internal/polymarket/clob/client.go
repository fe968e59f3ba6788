// Package clob is used to call clob polymarket endpoints.
package clob

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/daszybak/polymarket_vantage/internal/price"
	"github.com/daszybak/polymarket_vantage/pkg/httpclient"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// BaseURL returns the exchange host this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Time returns the exchange's server time as reported by GET /time.
func (c *Client) Time(ctx context.Context) (string, error) {
	ts, err := httpclient.GetResource[json.Number](ctx, c.httpClient, c.baseURL, "/time", []int{200})
	if err != nil {
		return "", err
	}
	return ts.String(), nil
}

type MarketToken struct {
	Outcome string      `json:"outcome"`
	Price   price.Price `json:"price"`
	TokenID string      `json:"token_id"`
	Winner  bool        `json:"winner"`
}

type Market struct {
	ConditionID string        `json:"condition_id"`
	Question    string        `json:"question"`
	Active      bool          `json:"active"`
	Closed      bool          `json:"closed"`
	Tokens      []MarketToken `json:"tokens"`
}

// marketList tolerates both a bare list and a page object with "data".
type marketList []*Market

func (ml *marketList) UnmarshalJSON(data []byte) error {
	var bare []*Market
	if err := json.Unmarshal(data, &bare); err == nil {
		*ml = bare
		return nil
	}

	var wrapped struct {
		Data []*Market `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}

	*ml = wrapped.Data
	return nil
}

// ListMarkets fetches up to limit markets from the exchange's own listing.
func (c *Client) ListMarkets(ctx context.Context, limit int) ([]*Market, error) {
	markets, err := httpclient.GetResource[marketList](ctx, c.httpClient, c.baseURL, "/markets?limit="+strconv.Itoa(limit), []int{200})
	if err != nil {
		return nil, err
	}
	return markets, nil
}

// Level is one price level of a book side. The API serves levels either
// as ["0.40","100"] pairs or as {"price":"0.40","size":"100"} objects.
type Level struct {
	Price string
	Size  string
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) < 2 {
			return fmt.Errorf("book level pair has %d elements, want 2", len(pair))
		}
		l.Price, l.Size = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Price string `json:"price"`
		Size  string `json:"size"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unrecognized book level shape: %w", err)
	}

	l.Price, l.Size = obj.Price, obj.Size
	return nil
}

func (l Level) String() string {
	return fmt.Sprintf("[%q, %q]", l.Price, l.Size)
}

type Book struct {
	Market    string  `json:"market"`
	AssetID   string  `json:"asset_id"`
	Timestamp string  `json:"timestamp"`
	Hash      string  `json:"hash"`
	Bids      []Level `json:"bids"`
	Asks      []Level `json:"asks"`
}

// Book fetches the order book snapshot for a token. A non-200 response
// surfaces as *httpclient.StatusError so callers can branch on 404.
func (c *Client) Book(ctx context.Context, tokenID string) (*Book, error) {
	params := url.Values{}
	params.Set("token_id", tokenID)
	return httpclient.GetResource[*Book](ctx, c.httpClient, c.baseURL, "/book?"+params.Encode(), []int{200})
}

// OrderPayload is the unauthenticated submission body. Its only purpose
// is to elicit a classifiable response from POST /order.
type OrderPayload struct {
	TokenID    string `json:"token_id"`
	Price      string `json:"price"`
	Size       string `json:"size"`
	Side       string `json:"side"`
	Expiration int64  `json:"expiration"`
	Nonce      int64  `json:"nonce"`
	Signature  string `json:"signature"`
}

// DummyOrder returns a structurally valid but unsigned order payload.
func DummyOrder() OrderPayload {
	return OrderPayload{
		TokenID:    "0",
		Price:      "0.5",
		Size:       "10",
		Side:       "BUY",
		Expiration: 0,
		Nonce:      0,
		Signature:  "0x0",
	}
}

// PostOrder submits a payload to POST /order and returns the raw status
// and body. Only transport failures produce an error.
func (c *Client) PostOrder(ctx context.Context, payload any) (int, []byte, error) {
	return httpclient.PostJSON(ctx, c.httpClient, c.baseURL+"/order", payload)
}
