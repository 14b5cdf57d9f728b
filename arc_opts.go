package arc

import (
	"log/slog"

	"github.com/meigma/arc/filter"
)

// Option configures an Archive.
type Option func(*Archive)

// WithFilter wraps serialization in a compression envelope, e.g.
// filter.Gzip for .tar.gz archives.
func WithFilter(f filter.Filter) Option {
	return func(a *Archive) {
		a.filter = f
	}
}

// WithLogger enables debug logging of codec operations.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}
