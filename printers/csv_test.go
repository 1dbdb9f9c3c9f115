package printers_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pouriyajamshidi/tcprobe/internal/testdata"
	"github.com/pouriyajamshidi/tcprobe/printers"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return records
}

func TestNewCSVPrinter_FileNames(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantProbe string
		wantStats string
	}{
		{name: "without extension", path: "run", wantProbe: "run.csv", wantStats: "run_stats.csv"},
		{name: "with extension", path: "run.csv", wantProbe: "run.csv", wantStats: "run_stats.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			p, err := printers.NewCSVPrinter(filepath.Join(dir, tt.path))
			require.NoError(t, err)
			t.Cleanup(func() { p.Done() })

			assert.Equal(t, filepath.Join(dir, tt.wantProbe), p.ProbeFile.Name())
			assert.Equal(t, filepath.Join(dir, tt.wantStats), p.StatsFile.Name())
		})
	}
}

func TestNewCSVPrinter_InvalidPath(t *testing.T) {
	_, err := printers.NewCSVPrinter(filepath.Join(t.TempDir(), "missing", "run"))
	assert.Error(t, err)
}

func TestCSVPrinter_WritesResultsAndStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run")
	s := testdata.TestSummary()

	p, err := printers.NewCSVPrinter(path)
	require.NoError(t, err)

	output := testdata.CaptureOutput(t, func() {
		for i := range s.Results {
			p.PrintProbeResult(&s.Results[i])
		}
		p.PrintSummary(&s)
	})
	require.NoError(t, p.Done())

	assert.Contains(t, output, "Summary: 1/2 healthy - results saved to")

	assert.Equal(t, [][]string{
		{"Target", "Status", "Latency(ms)", "Retries Used", "Error"},
		{testdata.TestTarget, "ok", "12.500", "1", ""},
		{testdata.TestFailedTarget, "fail", "", "1", "timeout (1000ms)"},
	}, readCSV(t, path+".csv"))

	stats := readCSV(t, path+"_stats.csv")
	assert.Equal(t, []string{"Metric", "Value"}, stats[0])
	assert.Contains(t, stats, []string{"Run ID", testdata.TestRunID})
	assert.Contains(t, stats, []string{"Healthy", "1"})
	assert.Contains(t, stats, []string{"Unhealthy", "1"})
	assert.Contains(t, stats, []string{"Total", "2"})
	assert.Contains(t, stats, []string{"Duration", "2 seconds"})
	assert.Contains(t, stats, []string{"Latency Avg(ms)", "12.500"})
}

func TestCSVPrinter_FailuresOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run")
	s := testdata.TestSummary()

	p, err := printers.NewCSVPrinter(path, printers.WithFailuresOnly[*printers.CSVPrinter]())
	require.NoError(t, err)

	for i := range s.Results {
		p.PrintProbeResult(&s.Results[i])
	}
	require.NoError(t, p.Done())

	records := readCSV(t, path+".csv")
	assert.Len(t, records, 2)
	assert.Equal(t, testdata.TestFailedTarget, records[1][0])
}
