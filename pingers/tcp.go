// Package pingers implements protocol-specific connect attempts used for reachability testing.
package pingers

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"time"

	"github.com/pouriyajamshidi/tcprobe/option"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

// ErrTimeout is attached to Timeout outcomes.
var ErrTimeout = errors.New("connect timed out")

// DefaultTimeout bounds a single attempt when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// TCPPinger performs single, timeout-bounded TCP connection attempts.
type TCPPinger struct {
	dialer  *net.Dialer
	timeout time.Duration
}

const tcp = "tcp"

// Ping dials addr once and closes the connection right away. The connect
// races the pinger's timeout; a cancelled ctx is reported as Cancelled.
func (t *TCPPinger) Ping(ctx context.Context, addr netip.AddrPort) statistics.Outcome {
	dialCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	start := time.Now()
	conn, err := t.dialer.DialContext(dialCtx, tcp, addr.String())
	elapsed := time.Since(start)

	if err == nil {
		conn.Close()
		return statistics.NewConnected(elapsed)
	}

	switch {
	case ctx.Err() != nil:
		return statistics.NewCancelled(ctx.Err())
	case errors.Is(dialCtx.Err(), context.DeadlineExceeded), isTimeout(err):
		return statistics.NewTimeout(t.timeout, errors.Join(ErrTimeout, err))
	default:
		return statistics.NewRefused(err)
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Timeout returns the per-attempt connect budget.
func (t *TCPPinger) Timeout() time.Duration {
	return t.timeout
}

type TCPOptions = option.Option[TCPPinger]

// NewTCPPinger creates a new TCP pinger with optional configuration.
func NewTCPPinger(opts ...TCPOptions) *TCPPinger {
	t := &TCPPinger{
		dialer:  &net.Dialer{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithDialer configures a custom net.Dialer for TCP connections.
// Leave its Timeout at zero; the attempt budget comes from WithTimeout.
func WithDialer(dialer *net.Dialer) TCPOptions {
	return func(t *TCPPinger) {
		t.dialer = dialer
	}
}

// WithTimeout configures the connection timeout for TCP dial operations.
func WithTimeout(timeout time.Duration) TCPOptions {
	return func(t *TCPPinger) {
		if timeout > 0 {
			t.timeout = timeout
		}
	}
}
