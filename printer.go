package tcprobe

import (
	"errors"

	"github.com/pouriyajamshidi/tcprobe/printers"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

var (
	_ Printer = (*printers.ColorPrinter)(nil)
	_ Printer = (*printers.JSONPrinter)(nil)
	_ Printer = (*printers.CSVPrinter)(nil)
	_ Printer = (*printers.DatabasePrinter)(nil)
	_ Printer = (*printers.PlainPrinter)(nil)
)

// ErrPrettyWithoutJSON is returned when --pretty is used without JSON output.
var ErrPrettyWithoutJSON = errors.New("--pretty has no effect without the --json flag")

// Printer defines a set of methods that any printer implementation must provide.
// Printers are responsible for outputting information, but should not modify data or perform calculations.
type Printer interface {
	// PrintProbeResult prints the final result of one target.
	// It is called once per target, in input order, after the run finished.
	PrintProbeResult(r *statistics.ProbeResult)

	// PrintSummary prints the aggregate of the run.
	// It is called once, after every PrintProbeResult.
	PrintSummary(s *statistics.Summary)

	// PrintError should print an error message.
	// Printer should also apply \n to the given string, if needed.
	PrintError(format string, args ...any)

	// Done flushes and releases whatever the printer holds.
	Done() error
}

// PrintSummary feeds a finished run to p: every result in input order,
// then the summary.
func PrintSummary(p Printer, s *statistics.Summary) {
	for i := range s.Results {
		p.PrintProbeResult(&s.Results[i])
	}
	p.PrintSummary(s)
}

// NewPrinter creates and returns an appropriate printer based on configuration
func NewPrinter(cfg PrinterConfig) (Printer, error) {
	if cfg.PrettyJSON && !cfg.OutputJSON {
		return nil, ErrPrettyWithoutJSON
	}

	switch {
	case cfg.OutputJSON:
		var opts []printers.JSONPrinterOption
		if cfg.PrettyJSON {
			opts = append(opts, printers.WithPrettyJSON())
		}
		if cfg.ShowFailuresOnly {
			opts = append(opts, printers.WithFailuresOnly[*printers.JSONPrinter]())
		}
		return printers.NewJSONPrinter(opts...), nil

	case cfg.OutputDBPath != "":
		var opts []printers.DatabasePrinterOption
		if cfg.ShowFailuresOnly {
			opts = append(opts, printers.WithFailuresOnly[*printers.DatabasePrinter]())
		}
		return printers.NewDatabasePrinter(cfg.OutputDBPath, opts...)

	case cfg.OutputCSVPath != "":
		var opts []printers.CSVPrinterOption
		if cfg.ShowFailuresOnly {
			opts = append(opts, printers.WithFailuresOnly[*printers.CSVPrinter]())
		}
		return printers.NewCSVPrinter(cfg.OutputCSVPath, opts...)

	case cfg.NoColor:
		var opts []printers.PlainPrinterOption
		if cfg.ShowFailuresOnly {
			opts = append(opts, printers.WithFailuresOnly[*printers.PlainPrinter]())
		}
		if cfg.ShowAttempts {
			opts = append(opts, printers.WithAttempts[*printers.PlainPrinter]())
		}
		return printers.NewPlainPrinter(opts...), nil

	default:
		var opts []printers.ColorPrinterOption
		if cfg.ShowFailuresOnly {
			opts = append(opts, printers.WithFailuresOnly[*printers.ColorPrinter]())
		}
		if cfg.ShowAttempts {
			opts = append(opts, printers.WithAttempts[*printers.ColorPrinter]())
		}
		return printers.NewColorPrinter(opts...), nil
	}
}

// PrinterConfig holds all configuration options for Printer creation
type PrinterConfig struct {
	OutputJSON       bool
	PrettyJSON       bool
	NoColor          bool
	ShowFailuresOnly bool
	ShowAttempts     bool
	OutputDBPath     string
	OutputCSVPath    string
}
