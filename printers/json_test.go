package printers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pouriyajamshidi/tcprobe/internal/testdata"
	"github.com/pouriyajamshidi/tcprobe/printers"
)

type jsonResult struct {
	Host        string   `json:"host"`
	Status      string   `json:"status"`
	LatencyMS   *float64 `json:"latency_ms"`
	Error       *string  `json:"error"`
	RetriesUsed uint     `json:"retries_used"`
}

type jsonSummary struct {
	Results []jsonResult `json:"results"`
	Healthy int          `json:"healthy"`
	Total   int          `json:"total"`
}

func TestJSONPrinter_PrintSummary(t *testing.T) {
	s := testdata.TestSummary()

	data := testdata.CaptureJSONOutput[jsonSummary](t, func() {
		p := printers.NewJSONPrinter()
		p.PrintProbeResult(&s.Results[0])
		p.PrintSummary(&s)
	})

	assert.Equal(t, 1, data.Healthy)
	assert.Equal(t, 2, data.Total)
	assert.Len(t, data.Results, 2)

	ok := data.Results[0]
	assert.Equal(t, testdata.TestTarget, ok.Host)
	assert.Equal(t, "ok", ok.Status)
	assert.Equal(t, testdata.ToPtr(12.5), ok.LatencyMS)
	assert.Nil(t, ok.Error)
	assert.Equal(t, uint(1), ok.RetriesUsed)

	fail := data.Results[1]
	assert.Equal(t, testdata.TestFailedTarget, fail.Host)
	assert.Equal(t, "fail", fail.Status)
	assert.Nil(t, fail.LatencyMS)
	assert.Equal(t, testdata.ToPtr("timeout (1000ms)"), fail.Error)
	assert.Equal(t, uint(1), fail.RetriesUsed)
}

func TestJSONPrinter_OneDocument(t *testing.T) {
	tests := []struct {
		name      string
		opts      []printers.JSONPrinterOption
		wantLines int
	}{
		{name: "compact", wantLines: 1},
		{name: "pretty", opts: []printers.JSONPrinterOption{printers.WithPrettyJSON()}, wantLines: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testdata.TestSummary()

			output := testdata.CaptureOutput(t, func() {
				printers.NewJSONPrinter(tt.opts...).PrintSummary(&s)
			})

			assert.Len(t, strings.Split(strings.TrimSpace(output), "\n"), tt.wantLines)
		})
	}
}

func TestJSONPrinter_FailuresOnly(t *testing.T) {
	s := testdata.TestSummary()

	data := testdata.CaptureJSONOutput[jsonSummary](t, func() {
		printers.NewJSONPrinter(printers.WithFailuresOnly[*printers.JSONPrinter]()).PrintSummary(&s)
	})

	assert.Len(t, data.Results, 1)
	assert.Equal(t, testdata.TestFailedTarget, data.Results[0].Host)
	assert.Equal(t, 1, data.Healthy)
	assert.Equal(t, 2, data.Total)

	// the caller's summary is left alone
	assert.Len(t, s.Results, 2)
}

func TestJSONPrinter_EmptyResults(t *testing.T) {
	s := testdata.TestSummary()
	s.Results = s.Results[:1]
	s.Healthy, s.Total = 1, 1

	output := testdata.CaptureOutput(t, func() {
		printers.NewJSONPrinter(printers.WithFailuresOnly[*printers.JSONPrinter]()).PrintSummary(&s)
	})

	assert.Equal(t, `{"results":[],"healthy":1,"total":1}`+"\n", output)
}
