package csvsource

import (
	"context"
	"errors"
	"time"

	"golang.org/x/text/encoding"

	"github.com/okian/circuito/internal/domain/ranking"
	"github.com/okian/circuito/pkg/logger"
	"github.com/okian/circuito/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Loader fetches and parses the ranking CSV. Every call to Load goes back to
// the source; nothing is cached.
type Loader struct {
	fetcher  Fetcher
	path     string
	encoding encoding.Encoding
	logger   logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader) error

// WithEncoding sets the source charset: utf-8 (default), iso-8859-1 or windows-1252.
func WithEncoding(name string) Option {
	return func(l *Loader) error {
		enc, err := lookupEncoding(name)
		if err != nil {
			return err
		}
		l.encoding = enc
		return nil
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) error {
		if lg != nil {
			l.logger = lg
		}
		return nil
	}
}

// NewLoader creates a loader reading path through fetcher.
func NewLoader(fetcher Fetcher, path string, opts ...Option) (*Loader, error) {
	l := &Loader{fetcher: fetcher, path: path}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	if l.logger == nil {
		l.logger = logger.Named("csvsource")
	}
	return l, nil
}

// Path returns the resource path the loader reads.
func (l *Loader) Path() string { return l.path }

// Load fetches the resource and parses it into a dataset.
func (l *Loader) Load(ctx context.Context) (ranking.Dataset, error) {
	start := time.Now()

	raw, err := l.fetcher.Fetch(ctx, l.path)
	if err != nil {
		l.observe("fetch_error", start)
		return nil, err
	}
	text, err := decode(raw, l.encoding)
	if err != nil {
		l.observe("decode_error", start)
		return nil, err
	}

	ds := Parse(text)
	result := "ok"
	if len(ds) == 0 {
		result = "empty"
	}
	elapsedMS := l.observe(result, start)
	metrics.UpdateDatasetRecords(len(ds))
	l.logger.Debug(ctx, "ranking csv loaded",
		logger.String("path", l.path),
		logger.Int("bytes", len(raw)),
		logger.Int("records", len(ds)),
		logger.Bool("transcoded", l.encoding != nil),
		logger.Float64("elapsed_ms", elapsedMS),
	)
	return ds, nil
}

// observe records the load outcome and returns its latency in milliseconds.
func (l *Loader) observe(result string, start time.Time) float64 {
	ms := float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond
	metrics.RecordCSVLoad(result, ms)
	return ms
}

// IsFetchError reports whether err came from retrieving the resource.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
