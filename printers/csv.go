package printers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pouriyajamshidi/tcprobe/option"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

const (
	colTarget      string = "Target"
	colStatus      string = "Status"
	colLatency     string = "Latency(ms)"
	colRetriesUsed string = "Retries Used"
	colError       string = "Error"
)

const (
	filePermission os.FileMode = 0644
	fileFlag       int         = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
)

// CSVPrinter writes one row per target to <path>.csv and the run summary
// to <path>_stats.csv.
type CSVPrinter struct {
	ProbeWriter *csv.Writer
	StatsWriter *csv.Writer
	ProbeFile   *os.File
	StatsFile   *os.File
	opt         options
}

type CSVPrinterOption = option.Option[CSVPrinter]

func (p *CSVPrinter) options() *options {
	return &p.opt
}

// NewCSVPrinter creates both CSV files and writes the probe header.
func NewCSVPrinter(filePath string, opts ...CSVPrinterOption) (*CSVPrinter, error) {
	probeFilename := addCSVExtension(filePath, false)

	probeFile, err := os.OpenFile(probeFilename, fileFlag, filePermission)
	if err != nil {
		return nil, fmt.Errorf("create probe CSV file %s: %w", probeFilename, err)
	}

	statsFilename := addCSVExtension(filePath, true)

	statsFile, err := os.OpenFile(statsFilename, fileFlag, filePermission)
	if err != nil {
		probeFile.Close()
		return nil, fmt.Errorf("create stats CSV file %s: %w", statsFilename, err)
	}

	p := &CSVPrinter{
		ProbeWriter: csv.NewWriter(probeFile),
		StatsWriter: csv.NewWriter(statsFile),
		ProbeFile:   probeFile,
		StatsFile:   statsFile,
	}

	for _, opt := range opts {
		opt(p)
	}

	if err := p.writeProbeHeader(); err != nil {
		p.Done()
		return nil, err
	}

	return p, nil
}

func addCSVExtension(filename string, withStatsExt bool) string {
	if withStatsExt {
		// Remove .csv extension if present, then add _stats.csv
		base := strings.TrimSuffix(filename, ".csv")
		return base + "_stats.csv"
	}

	if strings.HasSuffix(filename, ".csv") {
		return filename
	}

	return filename + ".csv"
}

func (p *CSVPrinter) writeProbeHeader() error {
	headers := []string{colTarget, colStatus, colLatency, colRetriesUsed, colError}

	if err := p.ProbeWriter.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	p.ProbeWriter.Flush()

	return p.ProbeWriter.Error()
}

// PrintProbeResult appends the target's row to the probe file.
func (p *CSVPrinter) PrintProbeResult(r *statistics.ProbeResult) {
	if p.opt.shouldSkip(r.IsHealthy()) {
		return
	}

	latency := ""
	if r.IsHealthy() {
		latency = strconv.FormatFloat(r.LatencyMS(), 'f', 3, 64)
	}

	record := []string{
		r.Target,
		string(r.Status),
		latency,
		strconv.FormatUint(uint64(r.RetriesUsed), 10),
		r.Error,
	}

	if err := p.ProbeWriter.Write(record); err != nil {
		p.PrintError("write probe record: %v", err)
	}

	p.ProbeWriter.Flush()
}

// PrintSummary writes the run statistics as Metric/Value rows.
func (p *CSVPrinter) PrintSummary(s *statistics.Summary) {
	stats := [][]string{
		{"Metric", "Value"},
		{"Run ID", s.RunID},
		{"Healthy", strconv.Itoa(s.Healthy)},
		{"Unhealthy", strconv.Itoa(s.Unhealthy())},
		{"Total", strconv.Itoa(s.Total)},
		{"Start Time", s.StartTime.Format(time.DateTime)},
		{"End Time", s.EndTime.Format(time.DateTime)},
		{"Duration", statistics.DurationToString(s.Duration())},
	}

	if s.Latency.HasResults {
		stats = append(stats,
			[]string{"Latency Min(ms)", fmt.Sprintf("%.3f", s.Latency.Min)},
			[]string{"Latency Avg(ms)", fmt.Sprintf("%.3f", s.Latency.Average)},
			[]string{"Latency Max(ms)", fmt.Sprintf("%.3f", s.Latency.Max)},
		)
	}

	if err := p.StatsWriter.WriteAll(stats); err != nil {
		p.PrintError("write statistics: %v", err)
		return
	}

	fmt.Printf("Summary: %s - results saved to %s and %s\n",
		summaryLine(s), p.ProbeFile.Name(), p.StatsFile.Name())
}

// PrintError logs an error message to stderr.
func (p *CSVPrinter) PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "CSV Error: "+format+"\n", args...)
}

// Done flushes the buffer of writers and closes the probe and stats file
func (p *CSVPrinter) Done() error {
	var errs []error

	if p.ProbeWriter != nil {
		p.ProbeWriter.Flush()
		errs = append(errs, p.ProbeWriter.Error())
	}

	if p.ProbeFile != nil {
		errs = append(errs, p.ProbeFile.Close())
	}

	if p.StatsWriter != nil {
		p.StatsWriter.Flush()
		errs = append(errs, p.StatsWriter.Error())
	}

	if p.StatsFile != nil {
		errs = append(errs, p.StatsFile.Close())
	}

	return errors.Join(errs...)
}
