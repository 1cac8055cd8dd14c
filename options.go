package circuitcube

import (
	"log/slog"
	"os"
	"time"
)

// Option configures a Circuit Cube session.
type Option func(*config)

type config struct {
	scanTimeout    time.Duration
	requestTimeout time.Duration
	verbose        bool
	logger         *slog.Logger
	journalPath    string
}

func defaultConfig() *config {
	return &config{
		scanTimeout:    10 * time.Second,
		requestTimeout: 3 * time.Second,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// slog returns the session logger. Without WithLogger or WithVerbose the
// library is silent.
func (c *config) slog() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	if c.verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.DiscardHandler)
}

// WithScanTimeout sets how long Scan and device discovery during connect
// wait for the peripheral to appear. Default 10 seconds.
func WithScanTimeout(d time.Duration) Option {
	return func(c *config) {
		c.scanTimeout = d
	}
}

// WithRequestTimeout sets how long request/response exchanges (the battery
// voltage query) wait for the device to answer. Default 3 seconds.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *config) {
		c.requestTimeout = d
	}
}

// WithVerbose enables debug logging to stderr.
func WithVerbose(enabled bool) Option {
	return func(c *config) {
		c.verbose = enabled
	}
}

// WithLogger routes library logging to the given logger. Overrides
// WithVerbose.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithJournal records issued commands and battery readings to a SQLite
// journal at the given path. The empty path disables journaling (default).
func WithJournal(path string) Option {
	return func(c *config) {
		c.journalPath = path
	}
}
