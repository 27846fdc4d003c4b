package dataset

// ============================================================================
// DATASET OPTIONS — Functional options for Load/Parse/New
// ============================================================================

// DefaultSuccessCode is the landing outcome value that marks a success.
const DefaultSuccessCode = "1"

// Option configures dataset construction via functional options pattern.
type Option func(*options)

type options struct {
	SuccessCode string
	Source      string
}

// WithSuccessCode sets the landing outcome value counted as a success
// by the site summary. Empty keeps the default.
func WithSuccessCode(code string) Option {
	return func(o *options) {
		if code != "" {
			o.SuccessCode = code
		}
	}
}

// WithSource records where the data came from (for logs and the page footer).
func WithSource(source string) Option {
	return func(o *options) {
		o.Source = source
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		SuccessCode: DefaultSuccessCode,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
