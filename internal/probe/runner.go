package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/daszybak/polymarket_vantage/internal/polymarket/clob"
	"github.com/daszybak/polymarket_vantage/internal/polymarket/gamma"
	"github.com/daszybak/polymarket_vantage/internal/polymarket/trading"
)

const (
	DefaultCallTimeout = 10 * time.Second
	DefaultBookTimeout = 5 * time.Second
)

// Runner sequences the probes. Stage gating: connectivity failure stops
// the run; book read and order submission both run once connectivity
// passed, independent of each other; the websocket probe is
// informational and never affects the verdict.
type Runner struct {
	Clob    *clob.Client
	Gamma   *gamma.Client
	Trading *trading.Client // nil selects unauthenticated order submission

	WebsocketURL    string // empty disables the websocket probe
	FallbackTokenID string

	CallTimeout time.Duration
	BookTimeout time.Duration

	Reporter *Reporter
	Ledger   *Ledger
	Log      *slog.Logger

	bookToken string // token whose book was read, set by the book probe
}

// Run executes the pipeline and reports whether the vantage point passed
// all three stages.
func (r *Runner) Run(ctx context.Context) bool {
	if r.CallTimeout == 0 {
		r.CallTimeout = DefaultCallTimeout
	}
	if r.BookTimeout == 0 {
		r.BookTimeout = DefaultBookTimeout
	}

	connectivity := r.runConnectivity(ctx)
	if !connectivity {
		r.Reporter.Blank()
		r.Reporter.Println("[SUMMARY] Basic connectivity failed.")
		return false
	}

	bookRead := r.runBookRead(ctx)
	orderSubmission := r.runOrderSubmission(ctx)

	if r.WebsocketURL != "" {
		r.runWebsocket(ctx)
	}

	overall := connectivity && bookRead && orderSubmission
	r.Reporter.Summary(overall, r.Ledger)
	return overall
}

// probeToken returns the instrument later probes should target: the one
// discovered by the book probe when available, else the configured
// fallback.
func (r *Runner) probeToken() string {
	if r.bookToken != "" {
		return r.bookToken
	}
	return r.FallbackTokenID
}
