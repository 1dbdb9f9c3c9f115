package printers

import (
	"fmt"
	"os"

	"github.com/gookit/color"

	"github.com/pouriyajamshidi/tcprobe/option"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

// Color functions used when formatting information. gookit keeps its own
// writer, so everything is printed through fmt on the current os.Stdout.
var (
	ColorCyan      = color.Cyan.Sprintf
	ColorGreen     = color.Green.Sprintf
	ColorYellow    = color.Yellow.Sprintf
	ColorRed       = color.Red.Sprintf
	ColorLightBlue = color.FgLightBlue.Sprintf

	labelOKStyle   = color.New(color.FgGreen, color.OpBold)
	labelFailStyle = color.New(color.FgRed, color.OpBold)
	boldStyle      = color.New(color.OpBold)
)

// ColorPrinter prints results with green/red status labels.
type ColorPrinter struct {
	opt options
}

type ColorPrinterOption = option.Option[ColorPrinter]

func (p *ColorPrinter) options() *options {
	return &p.opt
}

// NewColorPrinter creates a new ColorPrinter instance.
func NewColorPrinter(opts ...ColorPrinterOption) *ColorPrinter {
	p := &ColorPrinter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrintProbeResult prints a bold green [OK] line with the latency, or a
// bold red [FAIL] line with the last error in red.
func (p *ColorPrinter) PrintProbeResult(r *statistics.ProbeResult) {
	if p.opt.shouldSkip(r.IsHealthy()) {
		return
	}

	if r.IsHealthy() {
		fmt.Printf("%s %s\n", labelOKStyle.Sprint(labelOK), successLine(r))
		return
	}

	fmt.Printf("%s %-*s %s\n",
		labelFailStyle.Sprint(labelFail),
		targetWidth,
		r.Target,
		color.Red.Sprint(errorDetail(r)))

	if p.opt.ShowAttempts {
		for _, detail := range failedAttempts(r) {
			fmt.Println(ColorYellow("       %s", detail))
		}
	}
}

// PrintSummary prints the healthy count, colored by whether the run passed.
func (p *ColorPrinter) PrintSummary(s *statistics.Summary) {
	summary := ColorRed("%s", summaryLine(s))
	if s.AllHealthy() {
		summary = ColorGreen("%s", summaryLine(s))
	}
	fmt.Printf("\n%s: %s\n", boldStyle.Sprint("Summary"), summary)

	if s.Latency.HasResults {
		fmt.Printf("%s%s%s%s%s%s%s%s%s%s%s\n",
			ColorYellow("rtt "),
			ColorGreen("min"),
			ColorYellow("/"),
			ColorCyan("avg"),
			ColorYellow("/"),
			ColorRed("max: "),
			ColorGreen("%.3f", s.Latency.Min),
			ColorYellow("/"),
			ColorCyan("%.3f", s.Latency.Average),
			ColorYellow("/"),
			ColorRed("%.3f ms", s.Latency.Max))
	}

	fmt.Printf("%s%s\n", ColorYellow("completed in "), ColorLightBlue("%s", statistics.DurationToString(s.Duration())))
}

// PrintError prints an error message in red.
func (p *ColorPrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", labelFailStyle.Sprint("error:"), color.Red.Sprintf(format, args...))
}

// Done satisfies the Printer interface, there is nothing to release.
func (p *ColorPrinter) Done() error {
	return nil
}
