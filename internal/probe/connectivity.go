package probe

import (
	"context"
	"errors"
	"time"

	"github.com/daszybak/polymarket_vantage/pkg/httpclient"
)

// runConnectivity checks basic reachability of the exchange's time
// endpoint. It gates every other probe.
func (r *Runner) runConnectivity(ctx context.Context) bool {
	r.Reporter.Println("Testing connectivity to Polymarket CLOB API...")

	cctx, cancel := context.WithTimeout(ctx, r.CallTimeout)
	defer cancel()

	start := time.Now()
	serverTime, err := r.Clob.Time(cctx)
	if err != nil {
		var statusErr *httpclient.StatusError
		if errors.As(err, &statusErr) {
			r.Ledger.Record(LabelConnectivity, start)
			r.Reporter.Fail("Connected but received status code: %d", statusErr.StatusCode)
			r.Reporter.Detail("Response: %s", statusErr.Body)
		} else {
			r.Reporter.Fail("Could not connect to %s/time", r.Clob.BaseURL())
			r.Reporter.Detail("Error: %v", err)
		}
		r.Log.Debug("connectivity probe failed", "error", err)
		return false
	}

	latency := r.Ledger.Record(LabelConnectivity, start)
	r.Reporter.Pass("Connected to %s/time. Server time: %s", r.Clob.BaseURL(), serverTime)
	r.Reporter.Detail("Latency: %.2f ms", latency)
	return true
}
