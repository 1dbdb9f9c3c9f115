// Package dns handles all hostname resolution logic
package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"time"

	"github.com/pouriyajamshidi/tcprobe/option"
)

var (
	ErrNoIPv4Address = errors.New("no ipv4 address found")
	ErrNoIPv6Address = errors.New("no ipv6 address found")
	ErrNoIPAddresses = errors.New("no ip addresses")
	ErrResolve       = errors.New("resolve hostname")
	ErrInvalidTarget = errors.New("invalid target")
)

// Lookup is the subset of *net.Resolver the Resolver needs.
type Lookup interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// Resolver turns "host:port" targets into one concrete address.
// Nothing is cached; every call performs a fresh lookup.
type Resolver struct {
	lookup  Lookup
	timeout time.Duration
	useIPv4 bool
	useIPv6 bool
}

type ResolverOption = option.Option[Resolver]

// WithTimeout caps each lookup when the caller's context has no deadline.
// Without it a lookup is bounded only by the caller's context.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

// WithIPv4Only configures the resolver to only return IPv4 addresses
func WithIPv4Only() ResolverOption {
	return func(r *Resolver) {
		r.useIPv4 = true
		r.useIPv6 = false
	}
}

// WithIPv6Only configures the resolver to only return IPv6 addresses
func WithIPv6Only() ResolverOption {
	return func(r *Resolver) {
		r.useIPv4 = false
		r.useIPv6 = true
	}
}

// WithLookup replaces net.DefaultResolver, mostly for tests.
func WithLookup(l Lookup) ResolverOption {
	return func(r *Resolver) {
		r.lookup = l
	}
}

const ipv4OrIPv6 = "ip" // allows LookupNetIP to use both IPv4 and IPv6

// NewResolver creates a new DNS resolver with optional configuration
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		lookup: net.DefaultResolver,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve splits target into host and numeric port and returns the first
// address the lookup yields. Later candidates are never tried.
func (r *Resolver) Resolve(ctx context.Context, target string) (netip.AddrPort, error) {
	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("%w: %s: port must be a number between 0 and 65535", ErrInvalidTarget, target)
	}

	lctx := ctx
	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		lctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ip, err := r.ResolveHostname(lctx, host)
	if err != nil {
		return netip.AddrPort{}, err
	}

	return netip.AddrPortFrom(ip, uint16(port)), nil
}

// ResolveHostname resolves a hostname to an IP address respecting the context deadline
func (r *Resolver) ResolveHostname(ctx context.Context, hostname string) (netip.Addr, error) {
	if ip, err := netip.ParseAddr(hostname); err == nil {
		return ip.Unmap(), nil
	}

	ipAddrs, err := r.lookup.LookupNetIP(ctx, ipv4OrIPv6, hostname)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %s: %w", ErrResolve, hostname, err)
	}

	var filtered []netip.Addr
	switch {
	case r.useIPv4:
		filtered = filterIPv4(ipAddrs)
		if len(filtered) == 0 {
			return netip.Addr{}, fmt.Errorf("%w: %s", ErrNoIPv4Address, hostname)
		}
	case r.useIPv6:
		filtered = filterIPv6(ipAddrs)
		if len(filtered) == 0 {
			return netip.Addr{}, fmt.Errorf("%w: %s", ErrNoIPv6Address, hostname)
		}
	default:
		filtered = unmapAddresses(ipAddrs)
	}

	return selectFirstIP(filtered)
}

func selectFirstIP(ipAddrs []netip.Addr) (netip.Addr, error) {
	if len(ipAddrs) == 0 {
		return netip.Addr{}, ErrNoIPAddresses
	}
	return ipAddrs[0], nil
}

func filterIPv4(ipAddrs []netip.Addr) []netip.Addr {
	var ipList []netip.Addr
	for _, ip := range ipAddrs {
		// static builds (CGO=0) return IPv4-mapped IPv6 addresses
		if ip.Is4() || ip.Is4In6() {
			ipList = append(ipList, ip.Unmap())
		}
	}
	return ipList
}

func filterIPv6(ipAddrs []netip.Addr) []netip.Addr {
	var ipList []netip.Addr
	for _, ip := range ipAddrs {
		if ip.Is6() && !ip.Is4In6() {
			ipList = append(ipList, ip)
		}
	}
	return ipList
}

func unmapAddresses(ipAddrs []netip.Addr) []netip.Addr {
	ipList := make([]netip.Addr, len(ipAddrs))
	for i, ip := range ipAddrs {
		ipList[i] = ip.Unmap()
	}
	return ipList
}
