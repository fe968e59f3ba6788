// Package probe implements the vantage diagnostic pipeline: a fixed
// sequence of checks against the exchange, each converting its HTTP
// outcome into pass/fail plus a latency record.
package probe

import "time"

// Labels under which probes record their latencies.
const (
	LabelConnectivity = "Connectivity (GET /time)"
	LabelBookRead     = "Read Order Book (GET /book)"
	LabelPlaceOrder   = "Place Order (POST /order)"
	LabelWebsocket    = "Websocket (wss /ws/market)"
)

type Entry struct {
	Label  string
	Millis float64
}

// Ledger accumulates probe latencies. Labels keep insertion order;
// recording the same label again overwrites its value.
type Ledger struct {
	order  []string
	millis map[string]float64
}

func NewLedger() *Ledger {
	return &Ledger{millis: map[string]float64{}}
}

// Record stores the elapsed time since start under label and returns it
// in milliseconds.
func (l *Ledger) Record(label string, start time.Time) float64 {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	if ms < 0 {
		ms = 0
	}
	if _, ok := l.millis[label]; !ok {
		l.order = append(l.order, label)
	}
	l.millis[label] = ms
	return ms
}

func (l *Ledger) Len() int {
	return len(l.order)
}

// Get returns the recorded latency for label, if any.
func (l *Ledger) Get(label string) (float64, bool) {
	ms, ok := l.millis[label]
	return ms, ok
}

// Entries returns the recorded latencies in insertion order.
func (l *Ledger) Entries() []Entry {
	entries := make([]Entry, 0, len(l.order))
	for _, label := range l.order {
		entries = append(entries, Entry{Label: label, Millis: l.millis[label]})
	}
	return entries
}
