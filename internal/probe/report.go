package probe

import (
	"fmt"
	"io"
	"strings"
)

// Reporter writes the human-readable diagnostic output: tagged result
// lines, indented detail lines, and the final banner with the latency
// table.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) Pass(format string, args ...any) { r.tagged("PASS", format, args...) }
func (r *Reporter) Fail(format string, args ...any) { r.tagged("FAIL", format, args...) }
func (r *Reporter) Warn(format string, args ...any) { r.tagged("WARN", format, args...) }
func (r *Reporter) Info(format string, args ...any) { r.tagged("INFO", format, args...) }

func (r *Reporter) tagged(tag, format string, args ...any) {
	fmt.Fprintf(r.w, "[%s] %s\n", tag, fmt.Sprintf(format, args...))
}

// Detail writes an indented continuation line under a tagged line.
func (r *Reporter) Detail(format string, args ...any) {
	fmt.Fprintf(r.w, "      %s\n", fmt.Sprintf(format, args...))
}

func (r *Reporter) Println(format string, args ...any) {
	fmt.Fprintf(r.w, "%s\n", fmt.Sprintf(format, args...))
}

func (r *Reporter) Blank() {
	fmt.Fprintln(r.w)
}

// Summary prints the final verdict banner and the latency table.
func (r *Reporter) Summary(success bool, ledger *Ledger) {
	rule := strings.Repeat("=", 30)

	r.Blank()
	r.Println("%s", rule)
	if success {
		r.Println("RESULT: SUCCESS")
		r.Println("This vantage point appears FULLY COMPATIBLE with the Polymarket API.")
	} else {
		r.Println("RESULT: ISSUES DETECTED")
		r.Println("This vantage point may have issues connecting to Polymarket.")
	}

	if ledger.Len() > 0 {
		r.Blank()
		r.Println("--- Latency Summary ---")
		for _, entry := range ledger.Entries() {
			r.Println("%-30s: %.2f ms", entry.Label, entry.Millis)
		}
	}
	r.Println("%s", rule)
}
