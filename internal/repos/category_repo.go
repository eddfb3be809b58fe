package repos

import (
	"context"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/store"
)

type CategoryRepo struct {
	s store.PathStore
	p Paths
}

func NewCategoryRepo(s store.PathStore, p Paths) *CategoryRepo { return &CategoryRepo{s: s, p: p} }

// List returns categories in key order. Records that fail to decode are
// logged and left out.
func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	m, err := store.Children(ctx, r.s, r.p.Categories())
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(m))
	for _, k := range store.SortedKeys(m) {
		c, err := domain.DecodeCategory(k, m[k])
		if err != nil {
			skip("category", k, err)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Get returns found=false when nothing is stored under id.
func (r *CategoryRepo) Get(ctx context.Context, id string) (domain.Category, bool, error) {
	if !validKeys(id) {
		return domain.Category{}, false, nil
	}
	v, err := r.s.Get(ctx, r.p.Category(id))
	if err != nil || v == nil {
		return domain.Category{}, false, err
	}
	c, err := domain.DecodeCategory(id, v)
	return c, true, err
}

func (r *CategoryRepo) Create(ctx context.Context, c domain.Category) (bool, error) {
	return create(ctx, r.s, r.p.Category(c.ID), c.Node())
}

func (r *CategoryRepo) Put(ctx context.Context, c domain.Category) error {
	return r.s.Set(ctx, r.p.Category(c.ID), c.Node())
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	return r.s.Delete(ctx, r.p.Category(id))
}
