package t8nkit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evmtools/t8nkit/internal/cache"
	"github.com/evmtools/t8nkit/pkg/domain"
	"github.com/evmtools/t8nkit/pkg/fork"
)

// Evaluate runs one state transition through the external tool and returns
// the validated (allocation, result) pair. The call blocks for the full
// lifetime of the child process; concurrent calls are independent.
func (t *Tool) Evaluate(ctx context.Context, req domain.Request) (*domain.Transition, error) {
	start := time.Now()
	tr, err := t.evaluate(ctx, req)
	t.metrics.Observe(string(t.backend.ID), outcomeOf(err), time.Since(start))
	return tr, err
}

func (t *Tool) evaluate(ctx context.Context, req domain.Request) (*domain.Transition, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Trace && !t.backend.Traces {
		return nil, fmt.Errorf("%w: %s", domain.ErrTraceUnsupported, t.backend.ID)
	}

	forkName := fork.Encode(req.Fork, req.EIPs)
	reward, err := domain.EffectiveReward(req.Reward, req.Env)
	if err != nil {
		return nil, err
	}
	chainID := req.EffectiveChainID()

	// Traces and debug dumps are side effects of the run itself, so those
	// invocations never come from the cache.
	cacheable := t.cache != nil && !req.Trace && req.DebugDir == ""
	var key string
	if cacheable {
		key, err = cache.Key(string(t.backend.ID), req)
		if err != nil {
			return nil, fmt.Errorf("failed to derive cache key: %w", err)
		}
		if tr, err := t.cache.Get(ctx, key); err == nil {
			t.logger.Debug("transition served from cache", "backend", t.backend.ID, "key", key)
			return tr, nil
		} else if !errors.Is(err, domain.ErrNotCached) {
			t.logger.Warn("result cache read failed", "err", err)
		}
	}

	t.logger.Debug("invoking transition tool",
		"backend", t.backend.ID,
		"transport", t.backend.Transport,
		"fork", forkName,
		"chainId", chainID,
		"reward", reward,
		"trace", req.Trace,
	)

	var tr *domain.Transition
	switch t.backend.Transport {
	case domain.TransportStream:
		tr, err = t.evaluateStream(ctx, req, forkName, chainID, reward)
	case domain.TransportFilesystem:
		tr, err = t.evaluateFilesystem(ctx, req, forkName, chainID, reward)
	default:
		err = fmt.Errorf("unsupported transport %v", t.backend.Transport)
	}
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := t.cache.Put(ctx, key, tr); err != nil {
			t.logger.Warn("result cache write failed", "err", err)
		}
	}
	return tr, nil
}

func outcomeOf(err error) string {
	var toolErr *domain.ToolError
	var malformed *domain.MalformedOutputError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &toolErr):
		return "tool_error"
	case errors.As(err, &malformed):
		return "malformed_output"
	case errors.Is(err, domain.ErrBinaryNotFound):
		return "spawn_error"
	default:
		return "error"
	}
}
