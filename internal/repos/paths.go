package repos

import (
	"context"

	applog "harvestdesk/internal/log"
	"harvestdesk/internal/store"
)

// Paths lays out the tree under one root namespace.
type Paths struct{ Root string }

func (p Paths) Categories() string { return store.Join(p.Root, "Categories") }
func (p Paths) Category(id string) string { return store.Join(p.Categories(), id) }
func (p Paths) AllItems() string { return store.Join(p.Root, "CategoriesItems") }
func (p Paths) CategoryItems(cat string) string { return store.Join(p.AllItems(), cat) }
func (p Paths) Item(cat, id string) string { return store.Join(p.CategoryItems(cat), id) }
func (p Paths) Coupons() string { return store.Join(p.Root, "Coupons") }
func (p Paths) Coupon(id string) string { return store.Join(p.Coupons(), id) }
func (p Paths) Orders() string { return store.Join(p.Root, "OrderBills") }
func (p Paths) Order(id string) string { return store.Join(p.Orders(), id) }
func (p Paths) Users() string { return store.Join(p.Root, "Users") }
func (p Paths) User(id string) string { return store.Join(p.Users(), id) }
func (p Paths) UserOrders(uid string) string { return store.Join(p.User(uid), "orderBills") }
func (p Paths) UserOrder(uid, oid string) string {
	return store.Join(p.UserOrders(uid), oid)
}
func (p Paths) Reviews() string { return store.Join(p.Root, "Reviews") }
func (p Paths) ItemReviews(cat, item string) string { return store.Join(p.Reviews(), cat, item) }
func (p Paths) LikedItems() string { return store.Join(p.Root, "LikedItems") }
func (p Paths) SoldItems() string { return store.Join(p.Root, "SoldItems") }
func (p Paths) SoldOn(date string) string { return store.Join(p.SoldItems(), date) }

// validKeys reports whether every id can be used as a single path segment.
// Ids that cannot never name an existing record.
func validKeys(ids ...string) bool {
	for _, id := range ids {
		if !store.ValidKey(id) {
			return false
		}
	}
	return true
}

// create writes node at path unless something is already there. Stores
// without an atomic create fall back to a plain write; the caller has
// checked for existence just before.
func create(ctx context.Context, s store.PathStore, path string, node map[string]any) (bool, error) {
	if c, ok := s.(store.Creator); ok {
		return c.CreateIfAbsent(ctx, path, node)
	}
	return true, s.Set(ctx, path, node)
}

// skip logs a stored record that could not be decoded and is left out of a
// listing.
func skip(entity, key string, err error) {
	applog.Error(nil, "decode.skip", err, map[string]any{"entity": entity, "key": key})
}
