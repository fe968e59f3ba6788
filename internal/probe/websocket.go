package probe

import (
	"context"
	"time"

	"github.com/daszybak/polymarket_vantage/internal/polymarket/websocket"
)

// runWebsocket checks that the market data stream is reachable: dial,
// subscribe to one token, wait for a single frame. Informational only;
// the result never changes the overall verdict.
func (r *Runner) runWebsocket(ctx context.Context) bool {
	r.Reporter.Blank()
	r.Reporter.Println("Testing Websocket Market Stream...")

	wctx, cancel := context.WithTimeout(ctx, r.CallTimeout)
	defer cancel()

	start := time.Now()
	client, err := websocket.Dial(wctx, r.WebsocketURL)
	if err != nil {
		r.Reporter.Warn("Couldn't reach the websocket endpoint: %v", err)
		return false
	}
	defer client.Close(wctx)

	if err := client.SubscribeMarket(wctx, []string{r.probeToken()}); err != nil {
		r.Reporter.Warn("Couldn't subscribe to market stream: %v", err)
		return false
	}

	msg, err := client.ReadMessage(wctx)
	if err != nil {
		r.Reporter.Warn("No frame received from market stream: %v", err)
		return false
	}

	latency := r.Ledger.Record(LabelWebsocket, start)
	r.Reporter.Pass("Websocket stream delivered a frame (%d bytes).", len(msg))
	r.Reporter.Detail("Latency: %.2f ms", latency)
	return true
}
