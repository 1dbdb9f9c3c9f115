package printers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pouriyajamshidi/tcprobe/option"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

// JSONPrinter emits the run summary as a single JSON document on stdout.
// Per-target results are part of the summary, so nothing is printed
// until the run has finished.
type JSONPrinter struct {
	opt        options
	prettyJSON bool
}

type JSONPrinterOption = option.Option[JSONPrinter]

func (p *JSONPrinter) options() *options {
	return &p.opt
}

// WithPrettyJSON enables indented JSON output.
func WithPrettyJSON() JSONPrinterOption {
	return func(p *JSONPrinter) {
		p.prettyJSON = true
	}
}

// NewJSONPrinter creates a new JSONPrinter instance.
func NewJSONPrinter(opts ...JSONPrinterOption) *JSONPrinter {
	p := &JSONPrinter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// JSONError is the document written to stderr by PrintError.
type JSONError struct {
	Error string `json:"error"`
}

func (p *JSONPrinter) encode(v any) ([]byte, error) {
	if p.prettyJSON {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// PrintProbeResult satisfies the Printer interface, results are written by PrintSummary.
func (p *JSONPrinter) PrintProbeResult(_ *statistics.ProbeResult) {}

// PrintSummary writes {"results": [...], "healthy": n, "total": n}.
// With ShowFailuresOnly, healthy results are left out of "results" but
// still counted.
func (p *JSONPrinter) PrintSummary(s *statistics.Summary) {
	out := *s
	if p.opt.ShowFailuresOnly {
		out.Results = nil
		for _, r := range s.Results {
			if !r.IsHealthy() {
				out.Results = append(out.Results, r)
			}
		}
	}

	if out.Results == nil {
		out.Results = []statistics.ProbeResult{}
	}

	data, err := p.encode(out)
	if err != nil {
		p.PrintError("marshal summary: %v", err)
		return
	}

	fmt.Println(string(data))
}

// PrintError writes {"error": "..."} to stderr.
func (p *JSONPrinter) PrintError(format string, args ...any) {
	data, err := json.Marshal(JSONError{Error: fmt.Sprintf(format, args...)})
	if err != nil {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
		return
	}
	fmt.Fprintln(os.Stderr, string(data))
}

// Done satisfies the Printer interface, there is nothing to release.
func (p *JSONPrinter) Done() error {
	return nil
}
