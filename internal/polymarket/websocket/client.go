// Package websocket dials Polymarket's market data stream.
package websocket

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	HandshakeTimeout    = 30 * time.Second
	DefaultCloseTimeout = 5 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

type Client struct {
	conn *websocket.Conn
}

type MarketSubscription struct {
	AssetsIDs   []string `json:"assets_ids"`
	Type        string   `json:"type"`
	InitialDump *bool    `json:"initial_dump"`
}

func Dial(ctx context.Context, url string) (*Client, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, url, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("couldn't dial %s: %w", url, err)
	}

	return &Client{conn: conn}, nil
}

// SubscribeMarket requests market events for the given tokens, asking for
// an initial book dump so a frame arrives promptly.
func (c *Client) SubscribeMarket(ctx context.Context, tokenIDs []string) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(DefaultWriteTimeout)
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("couldn't set write deadline: %w", err)
	}

	initialDump := true
	sub := MarketSubscription{
		AssetsIDs:   tokenIDs,
		Type:        "market",
		InitialDump: &initialDump,
	}
	return c.conn.WriteJSON(sub)
}

// ReadMessage returns the next raw frame, honoring the context deadline.
func (c *Client) ReadMessage(ctx context.Context) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("couldn't set read deadline: %w", err)
		}
	}

	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("couldn't read message: %w", err)
	}
	return msg, nil
}

func (c *Client) Close(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(DefaultCloseTimeout)
	}

	err := c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		deadline,
	)
	if err != nil {
		// Best effort; the connection is torn down either way.
		return c.conn.Close()
	}

	return c.conn.Close()
}
