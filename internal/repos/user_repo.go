package repos

import (
	"context"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/store"
)

type UserRepo struct {
	s store.PathStore
	p Paths
}

func NewUserRepo(s store.PathStore, p Paths) *UserRepo { return &UserRepo{s: s, p: p} }

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	m, err := store.Children(ctx, r.s, r.p.Users())
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(m))
	for _, k := range store.SortedKeys(m) {
		u, err := domain.DecodeUser(k, m[k])
		if err != nil {
			skip("user", k, err)
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (domain.User, bool, error) {
	if !validKeys(id) {
		return domain.User{}, false, nil
	}
	v, err := r.s.Get(ctx, r.p.User(id))
	if err != nil || v == nil {
		return domain.User{}, false, err
	}
	u, err := domain.DecodeUser(id, v)
	return u, true, err
}

// RemoveOrder drops one entry from the user's order index, whether it is
// keyed by the order id or held in a list slot. A missing user or entry is
// not an error.
func (r *UserRepo) RemoveOrder(ctx context.Context, userID, orderID string) error {
	if !validKeys(userID, orderID) {
		return nil
	}
	v, err := r.s.Get(ctx, r.p.UserOrders(userID))
	if err != nil {
		return err
	}
	idx, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	for _, k := range store.SortedKeys(idx) {
		if id, ok := domain.IndexEntry(k, idx[k]); ok && id == orderID {
			if err := r.s.Delete(ctx, r.p.UserOrder(userID, k)); err != nil {
				return err
			}
		}
	}
	return nil
}
