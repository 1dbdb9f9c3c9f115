package statistics

import (
	"encoding/json"
	"time"
)

// Status is the terminal classification of a target.
type Status string

const (
	Healthy   Status = "ok"
	Unhealthy Status = "fail"
)

// ProbeResult is the final record for one target. It is created once,
// after the target's retry loop ends, and never mutated afterwards.
type ProbeResult struct {
	Index       int
	Target      string
	Status      Status
	Latency     time.Duration // only meaningful when Healthy
	Error       string        // last attempt's detail, only when Unhealthy
	RetriesUsed uint
	Attempts    []Outcome
}

// NewHealthyResult builds the result of a target that connected on attempt retriesUsed.
func NewHealthyResult(index int, target string, latency time.Duration, retriesUsed uint, attempts []Outcome) ProbeResult {
	return ProbeResult{
		Index:       index,
		Target:      target,
		Status:      Healthy,
		Latency:     latency,
		RetriesUsed: retriesUsed,
		Attempts:    attempts,
	}
}

// NewUnhealthyResult builds the result of a target whose attempts all failed.
// last is the most recent failure; earlier ones only survive in attempts.
func NewUnhealthyResult(index int, target string, last Outcome, retriesUsed uint, attempts []Outcome) ProbeResult {
	return ProbeResult{
		Index:       index,
		Target:      target,
		Status:      Unhealthy,
		Error:       last.Detail,
		RetriesUsed: retriesUsed,
		Attempts:    attempts,
	}
}

// IsHealthy reports whether the target ended Healthy.
func (r *ProbeResult) IsHealthy() bool {
	return r.Status == Healthy
}

// LatencyMS returns the latency in milliseconds.
func (r *ProbeResult) LatencyMS() float64 {
	return DurationToMillisecond(r.Latency)
}

type probeResultJSON struct {
	Host        string   `json:"host"`
	Status      string   `json:"status"`
	LatencyMS   *float64 `json:"latency_ms"`
	Error       *string  `json:"error"`
	RetriesUsed uint     `json:"retries_used"`
}

// MarshalJSON emits the machine readable form: latency_ms is null for
// unhealthy targets and error is null for healthy ones.
func (r ProbeResult) MarshalJSON() ([]byte, error) {
	out := probeResultJSON{
		Host:        r.Target,
		Status:      string(r.Status),
		RetriesUsed: r.RetriesUsed,
	}

	if r.IsHealthy() {
		latency := r.LatencyMS()
		out.LatencyMS = &latency
	} else {
		errStr := r.Error
		out.Error = &errStr
	}

	return json.Marshal(out)
}

// Summary aggregates every ProbeResult of a run, in input order.
type Summary struct {
	RunID     string        `json:"-"`
	Results   []ProbeResult `json:"results"`
	Healthy   int           `json:"healthy"`
	Total     int           `json:"total"`
	StartTime time.Time     `json:"-"`
	EndTime   time.Time     `json:"-"`
	Latency   RttResult     `json:"-"`
}

// NewSummary counts results once every target has finished. results must
// already be in input order.
func NewSummary(runID string, results []ProbeResult, start, end time.Time) Summary {
	s := Summary{
		RunID:     runID,
		Results:   results,
		Total:     len(results),
		StartTime: start,
		EndTime:   end,
	}

	var rtts []float32
	for i := range results {
		if results[i].IsHealthy() {
			s.Healthy++
			rtts = append(rtts, NanoToMillisecond(results[i].Latency.Nanoseconds()))
		}
	}

	s.Latency = CalcMinAvgMaxRttTime(rtts)

	return s
}

// AllHealthy reports whether the run succeeded as a whole.
func (s *Summary) AllHealthy() bool {
	return s.Healthy == s.Total
}

// Unhealthy returns the number of failed targets.
func (s *Summary) Unhealthy() int {
	return s.Total - s.Healthy
}

// Duration returns the wall-clock time of the run.
func (s *Summary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
