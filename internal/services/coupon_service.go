package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/repos"
	"harvestdesk/internal/validate"
)

const dayLayout = "2006-01-02"

type CouponService struct {
	Paths   repos.Paths
	Coupons *repos.CouponRepo
	Guard   *Guard
	Refs    *Refs
	// Now is the clock coupon status is computed against.
	Now func() time.Time
}

func NewCouponService(p repos.Paths, coupons *repos.CouponRepo, guard *Guard, refs *Refs) *CouponService {
	return &CouponService{Paths: p, Coupons: coupons, Guard: guard, Refs: refs, Now: time.Now}
}

type CouponInput struct {
	ID            string
	Description   string
	Type          string
	DiscountValue float64
	StartDate     string
	EndDate       string
	ProductRef    string
}

// CouponView carries the status computed for today; it is never stored.
type CouponView struct {
	domain.Coupon
	Status domain.CouponStatus `json:"status"`
}

func (s *CouponService) today() string { return s.Now().Format(dayLayout) }

// ResolveStatus classifies a coupon on the current day.
func (s *CouponService) ResolveStatus(c domain.Coupon) domain.CouponStatus {
	return c.StatusOn(s.today())
}

func (s *CouponService) List(ctx context.Context) ([]CouponView, error) {
	list, err := s.Coupons.List(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	out := make([]CouponView, 0, len(list))
	for _, c := range list {
		out = append(out, CouponView{Coupon: c, Status: c.StatusOn(today)})
	}
	return out, nil
}

func (s *CouponService) Get(ctx context.Context, id string) (CouponView, error) {
	c, ok, err := s.Coupons.Get(ctx, id)
	if err != nil {
		return CouponView{}, err
	}
	if !ok {
		return CouponView{}, domain.NotFound("coupon", id)
	}
	return CouponView{Coupon: c, Status: s.ResolveStatus(c)}, nil
}

// Create validates the fields, then the product reference, then uniqueness.
// Nothing is written when any check fails.
func (s *CouponService) Create(ctx context.Context, in CouponInput) (domain.Coupon, error) {
	c, err := s.couponFromInput(ctx, in.ID, in)
	if err != nil {
		return domain.Coupon{}, err
	}
	if err := s.Guard.EnsureUnique(ctx, "coupon", s.Paths.Coupons(), c.ID); err != nil {
		return domain.Coupon{}, err
	}
	created, err := s.Coupons.Create(ctx, c)
	if err != nil {
		return domain.Coupon{}, err
	}
	if !created {
		return domain.Coupon{}, reject(domain.Conflict("coupon", c.ID))
	}
	return c, nil
}

// Update replaces the whole record after the same checks as Create.
func (s *CouponService) Update(ctx context.Context, id string, in CouponInput) (domain.Coupon, error) {
	_, ok, err := s.Coupons.Get(ctx, id)
	if ok, err = found(ok, err); err != nil {
		return domain.Coupon{}, err
	}
	if !ok {
		return domain.Coupon{}, domain.NotFound("coupon", id)
	}
	if in.ID != "" && in.ID != id {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "id", "id cannot change"))
	}
	c, err := s.couponFromInput(ctx, id, in)
	if err != nil {
		return domain.Coupon{}, err
	}
	if err := s.Coupons.Put(ctx, c); err != nil {
		return domain.Coupon{}, err
	}
	return c, nil
}

// Delete is only allowed once the coupon has expired. The end date itself
// still counts as active.
func (s *CouponService) Delete(ctx context.Context, id string) error {
	c, ok, err := s.Coupons.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("coupon", id)
	}
	if today := s.today(); !c.Deletable(today) {
		return reject(domain.Precondition("coupon", id, "only expired coupons can be deleted, this one is "+string(c.StatusOn(today))))
	}
	return s.Coupons.Delete(ctx, id)
}

func (s *CouponService) couponFromInput(ctx context.Context, id string, in CouponInput) (domain.Coupon, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "id", "letters, digits, '-' and '_' only"))
	}
	c := domain.Coupon{
		ID:            id,
		Type:          domain.CouponType(strings.ToLower(strings.TrimSpace(in.Type))),
		DiscountValue: in.DiscountValue,
		ProductRef:    strings.TrimSpace(in.ProductRef),
	}
	if c.Description, ok = validate.Text(in.Description); !ok {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "description", "required"))
	}
	if !c.Type.Valid() {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "couponType", "must be percentage or fixed"))
	}
	if c.DiscountValue <= 0 || math.IsNaN(c.DiscountValue) || math.IsInf(c.DiscountValue, 0) {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "discountValue", "must be greater than 0"))
	}
	if c.Type == domain.CouponPercentage && c.DiscountValue > 100 {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "discountValue", "a percentage cannot exceed 100"))
	}
	if c.StartDate, ok = validate.Day(in.StartDate); !ok {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "startDate", "must be YYYY-MM-DD"))
	}
	if c.EndDate, ok = validate.Day(in.EndDate); !ok {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "endDate", "must be YYYY-MM-DD"))
	}
	if c.EndDate < c.StartDate {
		return domain.Coupon{}, reject(domain.Invalid("coupon", id, "endDate", "must not be before startDate"))
	}
	if _, err := s.Refs.ResolveProductRef(ctx, c.ProductRef, Hard); err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return domain.Coupon{}, reject(domain.InvalidReference("coupon", id, "productId", c.ProductRef))
		}
		return domain.Coupon{}, err
	}
	return c, nil
}
