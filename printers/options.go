package printers

// options contains common display options shared by all printers
type options struct {
	ShowFailuresOnly bool
	ShowAttempts     bool
}

type hasOptions interface {
	options() *options
}

// WithFailuresOnly configures the printer to only show failed targets
func WithFailuresOnly[T hasOptions]() func(T) {
	return func(p T) {
		p.options().ShowFailuresOnly = true
	}
}

// WithAttempts makes the printer list every failed attempt of a target,
// not only the last one
func WithAttempts[T hasOptions]() func(T) {
	return func(p T) {
		p.options().ShowAttempts = true
	}
}

// shouldSkip reports whether a healthy result is hidden by ShowFailuresOnly.
func (o *options) shouldSkip(healthy bool) bool {
	return healthy && o.ShowFailuresOnly
}
