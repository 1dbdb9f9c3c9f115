// Package option holds the functional option type shared by the prober,
// resolver, pinger and printers.
package option

// Option configures a value of type T when it is constructed.
type Option[T any] func(*T)
