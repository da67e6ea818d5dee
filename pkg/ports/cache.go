// Package ports defines the interfaces the invoker depends on, implemented
// by adapters under internal/.
package ports

import (
	"context"

	"github.com/evmtools/t8nkit/pkg/domain"
)

// ResultCache stores validated transitions keyed by a request digest.
// Implementations must return domain.ErrNotCached on a miss.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.Transition, error)
	Put(ctx context.Context, key string, tr *domain.Transition) error
}
