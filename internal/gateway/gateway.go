// File: internal/gateway/gateway.go
package gateway

import (
	"context"
	"log/slog"
	"ossgate/internal/metrics"
	"ossgate/pkg/storage"
	"time"
)

// ClientBuilder turns a config into a bound storage client. Build requires a
// bucket; BuildService is the bucket-less variant used for bucket listing.
type ClientBuilder interface {
	Build(ctx context.Context, cfg storage.Config) (storage.Client, error)
	BuildService(ctx context.Context, cfg storage.Config) (storage.Client, error)
}

// Timeouts are the per-operation deadlines applied to each attempt
type Timeouts struct {
	// Object listing
	List time.Duration
	// Upload and download
	Transfer time.Duration
	// Delete, create-folder and bucket listing
	Control time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		List:     30 * time.Second,
		Transfer: 20 * time.Second,
		Control:  12 * time.Second,
	}
}

// Fills zero fields from the defaults
func (t Timeouts) withDefaults() Timeouts {
	def := DefaultTimeouts()
	if t.List <= 0 {
		t.List = def.List
	}
	if t.Transfer <= 0 {
		t.Transfer = def.Transfer
	}
	if t.Control <= 0 {
		t.Control = def.Control
	}
	return t
}

// Gateway performs storage operations against any supported provider, with a
// single redirect-correcting retry. It holds no per-call state and is safe for
// concurrent use.
type Gateway struct {
	builder  ClientBuilder
	timeouts Timeouts
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Gateway)

func WithTimeouts(t Timeouts) Option {
	return func(g *Gateway) {
		g.timeouts = t.withDefaults()
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

func New(builder ClientBuilder, logger *slog.Logger, opts ...Option) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{
		builder:  builder,
		timeouts: DefaultTimeouts(),
		logger:   logger.With("component", "gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) Timeouts() Timeouts {
	return g.timeouts
}
