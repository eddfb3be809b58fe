package repos

import (
	"context"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/store"
)

type OrderRepo struct {
	s store.PathStore
	p Paths
}

func NewOrderRepo(s store.PathStore, p Paths) *OrderRepo { return &OrderRepo{s: s, p: p} }

// List returns orders in key order, which is the order they were inserted in
// for push-style keys.
func (r *OrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	m, err := store.Children(ctx, r.s, r.p.Orders())
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(m))
	for _, k := range store.SortedKeys(m) {
		o, err := domain.DecodeOrder(k, m[k])
		if err != nil {
			skip("order", k, err)
			continue
		}
		o.ID = k
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, bool, error) {
	if !validKeys(id) {
		return domain.Order{}, false, nil
	}
	v, err := r.s.Get(ctx, r.p.Order(id))
	if err != nil || v == nil {
		return domain.Order{}, false, err
	}
	o, err := domain.DecodeOrder(id, v)
	o.ID = id
	return o, true, err
}

// UpdateStatus writes the status field only.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return r.s.Update(ctx, r.p.Order(id), map[string]any{"status": string(status)})
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	return r.s.Delete(ctx, r.p.Order(id))
}
