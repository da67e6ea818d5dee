// Package httpapi exposes transition evaluation over HTTP for the serve
// mode. The API is intentionally small: one evaluate endpoint, a health
// check, and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evmtools/t8nkit/pkg/domain"
)

// Evaluator is the slice of the Tool the server needs.
type Evaluator interface {
	Evaluate(ctx context.Context, req domain.Request) (*domain.Transition, error)
}

// Server handles evaluate requests.
type Server struct {
	evaluator Evaluator
	logger    *slog.Logger
}

// NewHandler builds the HTTP routes. gatherer may be nil to skip the metrics
// endpoint.
func NewHandler(evaluator Evaluator, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	s := &Server{evaluator: evaluator, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	r.Post("/evaluate", s.handleEvaluate)
	return r
}

// evaluateBody is the wire shape of an evaluate request. The three documents
// stay raw; params is a dynamic map decoded into evaluateParams so unknown
// or missing fields get sensible handling.
type evaluateBody struct {
	Alloc  json.RawMessage `json:"alloc"`
	Txs    json.RawMessage `json:"txs"`
	Env    domain.Env      `json:"env"`
	Params map[string]any  `json:"params"`
}

type evaluateParams struct {
	Fork    string `mapstructure:"fork"`
	ChainID int64  `mapstructure:"chainId"`
	Reward  int64  `mapstructure:"reward"`
	EIPs    []int  `mapstructure:"eips"`
	Trace   bool   `mapstructure:"trace"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var body evaluateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var params evaluateParams
	if err := mapstructure.WeakDecode(body.Params, &params); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid params: %w", err))
		return
	}

	tr, err := s.evaluator.Evaluate(r.Context(), domain.Request{
		Alloc:   body.Alloc,
		Txs:     body.Txs,
		Env:     body.Env,
		Fork:    params.Fork,
		ChainID: params.ChainID,
		Reward:  params.Reward,
		EIPs:    params.EIPs,
		Trace:   params.Trace,
	})
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tr); err != nil {
		s.logger.Error("failed to encode response", "err", err)
	}
}

func statusFor(err error) int {
	var toolErr *domain.ToolError
	var malformed *domain.MalformedOutputError
	switch {
	case errors.As(err, &toolErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &malformed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrBinaryNotFound), errors.Is(err, domain.ErrTraceUnsupported):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("evaluate request failed", "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
