package boardflow

import (
	"log/slog"
	"time"

	"github.com/boardflow/boardflow/pkg/boardflow/config"
	"github.com/boardflow/boardflow/pkg/boardflow/event"
	"github.com/boardflow/boardflow/pkg/boardflow/host"
	"github.com/boardflow/boardflow/pkg/boardflow/observability"
	"github.com/boardflow/boardflow/pkg/boardflow/runlog"
)

// DefaultMaxActivations bounds a run that loops forever.
const DefaultMaxActivations = 1000

// runConfig holds per-run configuration.
type runConfig struct {
	runID          string
	maxActivations int
	timeBudget     time.Duration

	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool

	events *event.Bus
	trace  runlog.Store
	http   *host.Client
}

// defaultRunConfig returns the default execution configuration.
func defaultRunConfig() runConfig {
	return runConfig{
		maxActivations: DefaultMaxActivations,
		logger:         slog.Default(),
		metrics:        observability.NoopMetrics{},
		spans:          observability.NoopSpanManager{},
		http:           host.NewClient(),
	}
}

// RunOption configures one run.
type RunOption func(*runConfig)

// WithRunID sets the run identifier. A UUID is generated when unset.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithMaxActivations sets the activation budget. Default: 1000.
//
// Exec-edge cycles are legal, so a run's termination guarantee comes
// from this budget: exceeding it aborts the run with ErrBudgetExceeded.
func WithMaxActivations(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.maxActivations = n
		}
	}
}

// WithTimeBudget sets a wall-clock budget for the run.
// Exceeding it aborts the run with ErrBudgetExceeded, distinct from
// external cancellation. Default: no time budget.
func WithTimeBudget(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.timeBudget = d
		}
	}
}

// WithLogger sets the run logger. Activations receive the logger
// enriched with run, board and instance fields.
func WithLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m observability.MetricsRecorder) RunOption {
	return func(c *runConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables OTel span creation for the run and each activation.
func WithTracing() RunOption {
	return func(c *runConfig) {
		c.tracingEnabled = true
		c.spans = observability.NewSpanManager()
	}
}

// WithEventBus publishes run progress events to the given bus.
func WithEventBus(bus *event.Bus) RunOption {
	return func(c *runConfig) {
		c.events = bus
	}
}

// WithRunLog appends an activation record to the store for every node
// the run executes.
func WithRunLog(store runlog.Store) RunOption {
	return func(c *runConfig) {
		c.trace = store
	}
}

// WithHostHTTP sets the HTTP host client gated behind the "http"
// capability. Tests point this at an httptest server.
func WithHostHTTP(client *host.Client) RunOption {
	return func(c *runConfig) {
		if client != nil {
			c.http = client
		}
	}
}

// WithConfig applies run settings from a loaded configuration.
//
// Recognized keys: max_activations (int), time_budget (duration).
func WithConfig(cfg config.Config) RunOption {
	return func(c *runConfig) {
		if n := cfg.Int("max_activations", 0); n > 0 {
			c.maxActivations = n
		}
		if d := cfg.Duration("time_budget", 0); d > 0 {
			c.timeBudget = d
		}
	}
}
