package services

import (
	"context"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/metrics"
	"harvestdesk/internal/store"
)

// Guard checks id uniqueness inside a scope of the tree. The store has no
// unique constraint, so this is check-then-act: two concurrent creates of the
// same id can both pass. Repos close the window with CreateIfAbsent when the
// store supports it and report the loser as a Conflict.
type Guard struct {
	Store store.PathStore
}

func NewGuard(s store.PathStore) *Guard { return &Guard{Store: s} }

// EnsureUnique fails with Conflict when scopePath already has a child named id.
func (g *Guard) EnsureUnique(ctx context.Context, entity, scopePath, id string) error {
	v, err := g.Store.Get(ctx, store.Join(scopePath, id))
	if err != nil {
		return err
	}
	if v != nil {
		return reject(domain.Conflict(entity, id))
	}
	return nil
}

// reject counts a refused write and hands the error back.
func reject(e *domain.Error) error {
	metrics.Rejections.WithLabelValues(e.Entity, e.Kind.Error()).Inc()
	return e
}
