// Package tcprobe checks whether a batch of host:port targets accept TCP
// connections, with bounded parallelism, per-target retries and a run summary.
package tcprobe

import (
	"context"
	"net/netip"

	"github.com/pouriyajamshidi/tcprobe/dns"
	"github.com/pouriyajamshidi/tcprobe/pingers"
	"github.com/pouriyajamshidi/tcprobe/statistics"
)

var (
	// List of compile time checks for all pingers and resolvers
	_ Pinger   = (*pingers.TCPPinger)(nil)
	_ Resolver = (*dns.Resolver)(nil)
)

// Pinger performs exactly one connect attempt against a resolved address.
// Implementations must release any socket before returning.
type Pinger interface {
	Ping(ctx context.Context, addr netip.AddrPort) statistics.Outcome
}

// Resolver turns a target string into one concrete address.
type Resolver interface {
	Resolve(ctx context.Context, target string) (netip.AddrPort, error)
}
