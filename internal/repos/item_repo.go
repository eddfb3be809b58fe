package repos

import (
	"context"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/store"
)

type ItemRepo struct {
	s store.PathStore
	p Paths
}

func NewItemRepo(s store.PathStore, p Paths) *ItemRepo { return &ItemRepo{s: s, p: p} }

func (r *ItemRepo) ListByCategory(ctx context.Context, catID string) ([]domain.Item, error) {
	if !validKeys(catID) {
		return nil, nil
	}
	m, err := store.Children(ctx, r.s, r.p.CategoryItems(catID))
	if err != nil {
		return nil, err
	}
	return decodeItems(catID, m), nil
}

// All returns every stored item grouped by the category key it lives under,
// including groups whose category record no longer exists.
func (r *ItemRepo) All(ctx context.Context) (map[string][]domain.Item, error) {
	m, err := store.Children(ctx, r.s, r.p.AllItems())
	if err != nil {
		return nil, err
	}
	out := make(map[string][]domain.Item, len(m))
	for _, cat := range store.SortedKeys(m) {
		group, _ := m[cat].(map[string]any)
		out[cat] = decodeItems(cat, group)
	}
	return out, nil
}

func decodeItems(catID string, m map[string]any) []domain.Item {
	out := make([]domain.Item, 0, len(m))
	for _, k := range store.SortedKeys(m) {
		it, err := domain.DecodeItem(catID, k, m[k])
		if err != nil {
			skip("item", catID+"/"+k, err)
			continue
		}
		out = append(out, it)
	}
	return out
}

func (r *ItemRepo) Get(ctx context.Context, catID, id string) (domain.Item, bool, error) {
	if !validKeys(catID, id) {
		return domain.Item{}, false, nil
	}
	v, err := r.s.Get(ctx, r.p.Item(catID, id))
	if err != nil || v == nil {
		return domain.Item{}, false, err
	}
	it, err := domain.DecodeItem(catID, id, v)
	return it, true, err
}

func (r *ItemRepo) Create(ctx context.Context, it domain.Item) (bool, error) {
	return create(ctx, r.s, r.p.Item(it.CategoryID, it.ID), it.Node())
}

func (r *ItemRepo) Put(ctx context.Context, it domain.Item) error {
	return r.s.Set(ctx, r.p.Item(it.CategoryID, it.ID), it.Node())
}

func (r *ItemRepo) Delete(ctx context.Context, catID, id string) error {
	return r.s.Delete(ctx, r.p.Item(catID, id))
}

// DeleteCategory removes the whole items subtree of one category.
func (r *ItemRepo) DeleteCategory(ctx context.Context, catID string) error {
	return r.s.Delete(ctx, r.p.CategoryItems(catID))
}
