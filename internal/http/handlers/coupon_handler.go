package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "harvestdesk/internal/log"
	"harvestdesk/internal/services"
)

type CouponHandler struct {
	Coupons *services.CouponService
}

// couponForm takes the product reference as one "categoryId/itemId" string.
type couponForm struct {
	ID            string  `json:"id" form:"id"`
	Description   string  `json:"description" form:"description"`
	Type          string  `json:"couponType" form:"coupon_type"`
	DiscountValue float64 `json:"discountValue" form:"discount_value"`
	StartDate     string  `json:"startDate" form:"start_date"`
	EndDate       string  `json:"endDate" form:"end_date"`
	ProductRef    string  `json:"productId" form:"product_id"`
}

func (f couponForm) input() services.CouponInput {
	return services.CouponInput{
		ID:            f.ID,
		Description:   f.Description,
		Type:          f.Type,
		DiscountValue: f.DiscountValue,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		ProductRef:    f.ProductRef,
	}
}

// GET /api/v1/coupons
func (h *CouponHandler) List(c *fiber.Ctx) error {
	list, err := h.Coupons.List(c.UserContext())
	if err != nil {
		return fail(c, "coupon.list", err, nil)
	}
	return c.JSON(fiber.Map{"coupons": list})
}

// GET /api/v1/coupons/:id
func (h *CouponHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	v, err := h.Coupons.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, "coupon.get", err, map[string]any{"coupon": id})
	}
	return c.JSON(v)
}

// POST /api/v1/coupons
func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var f couponForm
	if err := c.BodyParser(&f); err != nil {
		return badBody(c, "coupon.create", "coupon", err)
	}
	cp, err := h.Coupons.Create(c.UserContext(), f.input())
	if err != nil {
		return fail(c, "coupon.create", err, map[string]any{"coupon": f.ID, "product": f.ProductRef})
	}
	c.Status(fiber.StatusCreated)
	applog.Audit(c, "coupon.create", map[string]any{"coupon": cp.ID, "product": cp.ProductRef})
	return c.JSON(services.CouponView{Coupon: cp, Status: h.Coupons.ResolveStatus(cp)})
}

// PUT /api/v1/coupons/:id
func (h *CouponHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var f couponForm
	if err := c.BodyParser(&f); err != nil {
		return badBody(c, "coupon.update", "coupon", err)
	}
	cp, err := h.Coupons.Update(c.UserContext(), id, f.input())
	if err != nil {
		return fail(c, "coupon.update", err, map[string]any{"coupon": id, "product": f.ProductRef})
	}
	applog.Audit(c, "coupon.update", map[string]any{"coupon": id, "product": cp.ProductRef})
	return c.JSON(services.CouponView{Coupon: cp, Status: h.Coupons.ResolveStatus(cp)})
}

// DELETE /api/v1/coupons/:id only succeeds for expired coupons.
func (h *CouponHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Coupons.Delete(c.UserContext(), id); err != nil {
		return fail(c, "coupon.delete", err, map[string]any{"coupon": id})
	}
	applog.Audit(c, "coupon.delete", map[string]any{"coupon": id})
	return c.JSON(fiber.Map{"deleted": id})
}
