// Package testdata provides shared test helpers and fixtures.
package testdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/netip"
	"os"
	"testing"
	"time"

	"github.com/pouriyajamshidi/tcprobe/statistics"
)

// Common test fixture values
const (
	TestHostname     = "example.com"
	TestTarget       = "example.com:443"
	TestFailedTarget = "10.255.255.1:22"
	TestRunID        = "3f7b9c1e-6a2d-4e8f-9b0a-1c2d3e4f5a6b"
)

var (
	TestTimestamp  = time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC)
	TestTimestamp2 = time.Date(2024, 1, 15, 10, 30, 47, 0, time.UTC)
)

// ToPtr returns a pointer to the provided value.
func ToPtr[T any](v T) *T {
	return &v
}

// TestSummary returns a finished run of two targets: TestTarget connected
// after one refused attempt, TestFailedTarget timed out twice.
func TestSummary() statistics.Summary {
	refused := statistics.NewRefused(errors.New("connect: connection refused"))
	timeout := statistics.NewTimeout(time.Second, errors.New("i/o timeout"))

	results := []statistics.ProbeResult{
		statistics.NewHealthyResult(0, TestTarget, 12500*time.Microsecond, 1,
			[]statistics.Outcome{refused, statistics.NewConnected(12500 * time.Microsecond)}),
		statistics.NewUnhealthyResult(1, TestFailedTarget, timeout, 1,
			[]statistics.Outcome{timeout, timeout}),
	}

	return statistics.NewSummary(TestRunID, results, TestTimestamp, TestTimestamp2)
}

// StartListener starts a loopback TCP server that accepts and immediately
// closes connections. It is shut down when the test ends.
func StartListener(t *testing.T) netip.AddrPort {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("start test server: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	return listener.Addr().(*net.TCPAddr).AddrPort()
}

// ClosedPort returns a loopback address nothing listens on.
func ClosedPort(t *testing.T) netip.AddrPort {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	addr := listener.Addr().(*net.TCPAddr).AddrPort()
	listener.Close()

	return addr
}

// CaptureOutput captures stdout during function execution and returns it as a string.
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	w.Close()
	output := <-done
	os.Stdout = oldStdout

	return output
}

// CaptureJSONOutput captures and parses JSON output from stdout.
func CaptureJSONOutput[T any](t *testing.T, fn func()) T {
	t.Helper()

	output := CaptureOutput(t, fn)

	var data T
	if err := json.Unmarshal([]byte(output), &data); err != nil {
		t.Fatalf("parse JSON: %v\nOutput: %s", err, output)
	}

	return data
}
