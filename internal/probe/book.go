package probe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/daszybak/polymarket_vantage/internal/polymarket/clob"
	"github.com/daszybak/polymarket_vantage/pkg/httpclient"
	"github.com/daszybak/polymarket_vantage/pkg/orderedset"
)

// candidate is a tradable instrument extracted during discovery.
type candidate struct {
	tokenID string
	label   string
}

// runBookRead discovers an active market and verifies the exchange can
// serve an order book for it, stopping at the first readable book.
func (r *Runner) runBookRead(ctx context.Context) bool {
	r.Reporter.Blank()
	r.Reporter.Println("Testing Read Order Book (Public API)...")

	candidates, err := r.discoverCandidates(ctx)
	if err != nil {
		r.Reporter.Fail("Error discovering markets: %v", err)
		return false
	}
	if len(candidates) == 0 {
		r.Reporter.Fail("No markets found to test.")
		return false
	}

	r.Reporter.Info("Found %d candidate tokens. Checking for order books...", len(candidates))

	for _, cand := range candidates {
		ok, done := r.readBook(ctx, cand)
		if done {
			return ok
		}
	}

	r.Reporter.Fail("Could not find any accessible order book in the fetched markets.")
	return false
}

// readBook attempts a single book fetch. done reports whether the scan
// should stop (either a readable book or a transport failure).
func (r *Runner) readBook(ctx context.Context, cand candidate) (ok, done bool) {
	bctx, cancel := context.WithTimeout(ctx, r.BookTimeout)
	defer cancel()

	start := time.Now()
	book, err := r.Clob.Book(bctx, cand.tokenID)
	if err != nil {
		var statusErr *httpclient.StatusError
		if !errors.As(err, &statusErr) {
			r.Reporter.Fail("Error reading order book: %v", err)
			return false, true
		}
		r.Ledger.Record(LabelBookRead, start)
		if statusErr.StatusCode == http.StatusNotFound {
			// Empty book or unknown token; try the next candidate.
			return false, false
		}
		r.Reporter.Warn("Failed to read book for %s. Status: %d", cand.tokenID, statusErr.StatusCode)
		return false, false
	}

	latency := r.Ledger.Record(LabelBookRead, start)
	r.Reporter.Pass("Successfully read order book for token %s", cand.tokenID)
	r.Reporter.Detail("Market: %s", cand.label)
	r.Reporter.Detail("Latency: %.2f ms", latency)
	r.Reporter.Detail("Top Bid: %s", topLevel(book.Bids))
	r.Reporter.Detail("Top Ask: %s", topLevel(book.Asks))
	r.bookToken = cand.tokenID
	return true, true
}

func topLevel(levels []clob.Level) string {
	if len(levels) == 0 {
		return "None"
	}
	return levels[0].String()
}

// discoverCandidates queries the gamma metadata API for active markets
// and extracts one token id per market, falling back to the exchange's
// own listing when gamma answers with an error status. Duplicate token
// ids are dropped, keeping discovery order.
func (r *Runner) discoverCandidates(ctx context.Context) ([]candidate, error) {
	gctx, cancel := context.WithTimeout(ctx, r.CallTimeout)
	defer cancel()

	r.Reporter.Info("Fetching active markets from Gamma API...")
	seen := orderedset.New[string]()

	markets, err := r.Gamma.ActiveMarkets(gctx, 10)
	if err == nil {
		var candidates []candidate
		for _, m := range markets {
			id, ok := m.ClobTokenIDs.First()
			if !ok || !seen.Add(id) {
				continue
			}
			candidates = append(candidates, candidate{tokenID: id, label: m.Label()})
		}
		return candidates, nil
	}

	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return nil, err
	}
	r.Reporter.Warn("Gamma API failed (%d). Falling back to CLOB markets...", statusErr.StatusCode)

	fctx, cancel := context.WithTimeout(ctx, r.CallTimeout)
	defer cancel()

	clobMarkets, err := r.Clob.ListMarkets(fctx, 50)
	if err != nil {
		if errors.As(err, &statusErr) {
			// Both discovery paths answered with errors; nothing to scan.
			return nil, nil
		}
		return nil, err
	}

	var candidates []candidate
	for _, m := range clobMarkets {
		if len(m.Tokens) == 0 || m.Tokens[0].TokenID == "" {
			continue
		}
		id := m.Tokens[0].TokenID
		if !seen.Add(id) {
			continue
		}
		label := m.Question
		if label == "" {
			label = "Unknown"
		}
		candidates = append(candidates, candidate{tokenID: id, label: label})
	}
	return candidates, nil
}
