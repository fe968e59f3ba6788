// Package gamma consumes Polymarket gamma endpoints.
package gamma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

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

// TokenIDs handles the three shapes the API serves for clobTokenIds:
// a JSON-encoded string list, a literal list, or garbage. Malformed
// values decode to an empty list rather than failing the market.
type TokenIDs []string

func (t *TokenIDs) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}

	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		*t = nil
		return nil
	}
	if err := json.Unmarshal([]byte(encoded), &list); err != nil {
		// Double-encoded value that doesn't parse: treat as absent.
		*t = nil
		return nil
	}

	*t = list
	return nil
}

// First returns the first token id and whether one exists.
func (t TokenIDs) First() (string, bool) {
	if len(t) == 0 {
		return "", false
	}
	return t[0], true
}

type Market struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Slug         string   `json:"slug"`
	Active       bool     `json:"active"`
	Closed       bool     `json:"closed"`
	ClobTokenIDs TokenIDs `json:"clobTokenIds"`
}

// Label returns a human-readable name for the market.
func (m *Market) Label() string {
	if m.Question != "" {
		return m.Question
	}
	if m.Slug != "" {
		return m.Slug
	}
	return "Unknown"
}

// MarketList normalizes the two response shapes the API serves:
// a bare list, or an object wrapping the list under "data".
type MarketList []*Market

func (ml *MarketList) UnmarshalJSON(data []byte) error {
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

// ActiveMarkets fetches up to limit open markets ordered by recent volume.
func (c *Client) ActiveMarkets(ctx context.Context, limit int) ([]*Market, error) {
	params := url.Values{}
	params.Set("closed", "false")
	params.Set("active", "true")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("order", "volume24hr")

	markets, err := httpclient.GetResource[MarketList](ctx, c.httpClient, c.baseURL, "/markets?"+params.Encode(), []int{200})
	if err != nil {
		return nil, err
	}
	return markets, nil
}
