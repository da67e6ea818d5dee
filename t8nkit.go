package t8nkit

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/evmtools/t8nkit/internal/logging"
	"github.com/evmtools/t8nkit/internal/metrics"
	"github.com/evmtools/t8nkit/internal/process"
	"github.com/evmtools/t8nkit/pkg/backend"
	"github.com/evmtools/t8nkit/pkg/domain"
	"github.com/evmtools/t8nkit/pkg/ports"
)

// Version of the t8nkit module.
const Version = "0.1.0"

// Tool drives one transition tool implementation. Its transport is fixed at
// construction; there is no per-call transport fallback.
type Tool struct {
	backend backend.Backend
	binary  string
	workdir string
	logger  *slog.Logger
	cache   ports.ResultCache
	metrics *metrics.Recorder
}

// Option configures a Tool.
type Option func(*Tool)

// WithBinary overrides the backend's default $PATH lookup with an explicit
// binary path.
func WithBinary(path string) Option {
	return func(t *Tool) { t.binary = path }
}

// WithLogger sets a structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tool) { t.logger = logger }
}

// WithWorkdir places ephemeral workspaces and trace directories under dir
// instead of the system temp directory.
func WithWorkdir(dir string) Option {
	return func(t *Tool) { t.workdir = dir }
}

// WithResultCache reuses validated transitions for identical requests.
// Traced and debug-dumped invocations always bypass the cache.
func WithResultCache(c ports.ResultCache) Option {
	return func(t *Tool) { t.cache = c }
}

// WithMetrics registers invocation counters on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(t *Tool) { t.metrics = metrics.New(reg) }
}

// New constructs a Tool for the given backend, resolving its binary on $PATH
// unless WithBinary points at one explicitly.
func New(b backend.Backend, opts ...Option) (*Tool, error) {
	t := &Tool{
		backend: b,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.binary == "" {
		path, err := process.LookPath(b.Binary)
		if err != nil {
			return nil, err
		}
		t.binary = path
	} else if _, err := os.Stat(t.binary); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrBinaryNotFound, t.binary)
	}

	return t, nil
}

// Backend returns the implementation this tool drives.
func (t *Tool) Backend() backend.Backend { return t.backend }

// Binary returns the resolved binary path.
func (t *Tool) Binary() string { return t.binary }
