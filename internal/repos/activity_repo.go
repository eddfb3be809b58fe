package repos

import (
	"context"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/store"
)

// ActivityRepo reads the records customers produce: reviews, liked items and
// daily sold items. The back-office never writes them.
type ActivityRepo struct {
	s store.PathStore
	p Paths
}

func NewActivityRepo(s store.PathStore, p Paths) *ActivityRepo { return &ActivityRepo{s: s, p: p} }

// Reviews walks Reviews/{category}/{item}/{review}.
func (r *ActivityRepo) Reviews(ctx context.Context) ([]domain.Review, error) {
	tree, err := store.Children(ctx, r.s, r.p.Reviews())
	if err != nil {
		return nil, err
	}
	var out []domain.Review
	for _, cat := range store.SortedKeys(tree) {
		items, _ := tree[cat].(map[string]any)
		for _, item := range store.SortedKeys(items) {
			revs, _ := items[item].(map[string]any)
			out = append(out, decodeReviews(cat, item, revs)...)
		}
	}
	return out, nil
}

func (r *ActivityRepo) ItemReviews(ctx context.Context, catID, itemID string) ([]domain.Review, error) {
	if !validKeys(catID, itemID) {
		return nil, nil
	}
	m, err := store.Children(ctx, r.s, r.p.ItemReviews(catID, itemID))
	if err != nil {
		return nil, err
	}
	return decodeReviews(catID, itemID, m), nil
}

func decodeReviews(cat, item string, m map[string]any) []domain.Review {
	out := make([]domain.Review, 0, len(m))
	for _, k := range store.SortedKeys(m) {
		rv, err := domain.DecodeReview(cat, item, k, m[k])
		if err != nil {
			skip("review", cat+"/"+item+"/"+k, err)
			continue
		}
		out = append(out, rv)
	}
	return out
}

// LikedItems walks LikedItems/{user}/{item}.
func (r *ActivityRepo) LikedItems(ctx context.Context) ([]domain.LikedItem, error) {
	tree, err := store.Children(ctx, r.s, r.p.LikedItems())
	if err != nil {
		return nil, err
	}
	var out []domain.LikedItem
	for _, uid := range store.SortedKeys(tree) {
		items, ok := tree[uid].(map[string]any)
		if !ok {
			continue
		}
		for _, k := range store.SortedKeys(items) {
			li, err := domain.DecodeLikedItem(uid, k, items[k])
			if err != nil {
				skip("liked item", uid+"/"+k, err)
				continue
			}
			out = append(out, li)
		}
	}
	return out, nil
}

type SoldDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// SoldDays lists the dates that have sold-item records.
func (r *ActivityRepo) SoldDays(ctx context.Context) ([]SoldDay, error) {
	tree, err := store.Children(ctx, r.s, r.p.SoldItems())
	if err != nil {
		return nil, err
	}
	out := make([]SoldDay, 0, len(tree))
	for _, d := range store.SortedKeys(tree) {
		recs, _ := tree[d].(map[string]any)
		out = append(out, SoldDay{Date: d, Count: len(recs)})
	}
	return out, nil
}

func (r *ActivityRepo) SoldOn(ctx context.Context, date string) ([]domain.SoldItem, error) {
	if !validKeys(date) {
		return nil, nil
	}
	m, err := store.Children(ctx, r.s, r.p.SoldOn(date))
	if err != nil {
		return nil, err
	}
	out := make([]domain.SoldItem, 0, len(m))
	for _, k := range store.SortedKeys(m) {
		si, err := domain.DecodeSoldItem(date, k, m[k])
		if err != nil {
			skip("sold item", date+"/"+k, err)
			continue
		}
		out = append(out, si)
	}
	return out, nil
}
