package repos

import (
	"context"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/store"
)

type CouponRepo struct {
	s store.PathStore
	p Paths
}

func NewCouponRepo(s store.PathStore, p Paths) *CouponRepo { return &CouponRepo{s: s, p: p} }

func (r *CouponRepo) List(ctx context.Context) ([]domain.Coupon, error) {
	m, err := store.Children(ctx, r.s, r.p.Coupons())
	if err != nil {
		return nil, err
	}
	out := make([]domain.Coupon, 0, len(m))
	for _, k := range store.SortedKeys(m) {
		c, err := domain.DecodeCoupon(k, m[k])
		if err != nil {
			skip("coupon", k, err)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CouponRepo) Get(ctx context.Context, id string) (domain.Coupon, bool, error) {
	if !validKeys(id) {
		return domain.Coupon{}, false, nil
	}
	v, err := r.s.Get(ctx, r.p.Coupon(id))
	if err != nil || v == nil {
		return domain.Coupon{}, false, err
	}
	c, err := domain.DecodeCoupon(id, v)
	return c, true, err
}

func (r *CouponRepo) Create(ctx context.Context, c domain.Coupon) (bool, error) {
	return create(ctx, r.s, r.p.Coupon(c.ID), c.Node())
}

func (r *CouponRepo) Put(ctx context.Context, c domain.Coupon) error {
	return r.s.Set(ctx, r.p.Coupon(c.ID), c.Node())
}

func (r *CouponRepo) Delete(ctx context.Context, id string) error {
	return r.s.Delete(ctx, r.p.Coupon(id))
}
