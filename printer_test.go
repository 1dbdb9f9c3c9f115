package tcprobe_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pouriyajamshidi/tcprobe"
	"github.com/pouriyajamshidi/tcprobe/internal/testdata"
	"github.com/pouriyajamshidi/tcprobe/printers"
)

func TestNewPrinter(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     tcprobe.PrinterConfig
		want    tcprobe.Printer
		wantErr error
	}{
		{name: "color by default", cfg: tcprobe.PrinterConfig{}, want: &printers.ColorPrinter{}},
		{name: "plain", cfg: tcprobe.PrinterConfig{NoColor: true}, want: &printers.PlainPrinter{}},
		{name: "json", cfg: tcprobe.PrinterConfig{OutputJSON: true, PrettyJSON: true}, want: &printers.JSONPrinter{}},
		{name: "csv", cfg: tcprobe.PrinterConfig{OutputCSVPath: filepath.Join(dir, "run")}, want: &printers.CSVPrinter{}},
		{name: "db", cfg: tcprobe.PrinterConfig{OutputDBPath: filepath.Join(dir, "run.db")}, want: &printers.DatabasePrinter{}},
		{name: "pretty without json", cfg: tcprobe.PrinterConfig{PrettyJSON: true}, wantErr: tcprobe.ErrPrettyWithoutJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tcprobe.NewPrinter(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
			assert.NoError(t, p.Done())
		})
	}
}

func TestPrintSummary(t *testing.T) {
	s := testdata.TestSummary()
	p, err := tcprobe.NewPrinter(tcprobe.PrinterConfig{NoColor: true})
	require.NoError(t, err)

	output := testdata.CaptureOutput(t, func() {
		tcprobe.PrintSummary(p, &s)
	})

	want := "[OK]   example.com:443                12.5ms (retries: 1)\n" +
		"[FAIL] 10.255.255.1:22                timeout (1000ms)\n" +
		"\nSummary: 1/2 healthy\n" +
		"rtt min/avg/max: 12.500/12.500/12.500 ms\n" +
		"completed in 2 seconds\n"

	assert.Equal(t, want, output)
}
