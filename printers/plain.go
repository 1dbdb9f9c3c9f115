package printers

import (
	"fmt"
	"os"

	"github.com/pouriyajamshidi/tcprobe/option"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

// PlainPrinter is a printer that prints the results in a simple, plain text format.
type PlainPrinter struct {
	opt options
}

type PlainPrinterOption = option.Option[PlainPrinter]

func (p *PlainPrinter) options() *options {
	return &p.opt
}

// NewPlainPrinter creates a new PlainPrinter instance.
func NewPlainPrinter(opts ...PlainPrinterOption) *PlainPrinter {
	p := &PlainPrinter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrintProbeResult prints one line for the target, plus earlier failed
// attempts when ShowAttempts is set.
func (p *PlainPrinter) PrintProbeResult(r *statistics.ProbeResult) {
	if p.opt.shouldSkip(r.IsHealthy()) {
		return
	}

	if r.IsHealthy() {
		fmt.Printf("%s %s\n", labelOK, successLine(r))
		return
	}

	fmt.Printf("%s %-*s %s\n", labelFail, targetWidth, r.Target, errorDetail(r))

	if p.opt.ShowAttempts {
		for _, detail := range failedAttempts(r) {
			fmt.Printf("       %s\n", detail)
		}
	}
}

// PrintSummary prints the healthy count, the latency spread and the run duration.
func (p *PlainPrinter) PrintSummary(s *statistics.Summary) {
	fmt.Printf("\nSummary: %s\n", summaryLine(s))

	if s.Latency.HasResults {
		fmt.Printf("rtt min/avg/max: %.3f/%.3f/%.3f ms\n",
			s.Latency.Min,
			s.Latency.Average,
			s.Latency.Max)
	}

	fmt.Printf("completed in %s\n", statistics.DurationToString(s.Duration()))
}

// PrintError prints an error message to stderr.
func (p *PlainPrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// Done satisfies the Printer interface, there is nothing to release.
func (p *PlainPrinter) Done() error {
	return nil
}
