package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"harvestdesk/internal/domain"
	applog "harvestdesk/internal/log"
	"harvestdesk/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /api/v1/orders, newest first.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.Orders.List(c.UserContext())
	if err != nil {
		return fail(c, "order.list", err, nil)
	}
	return c.JSON(fiber.Map{"orders": list})
}

// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	d, err := h.Orders.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, "order.get", err, map[string]any{"order_id": id})
	}
	return c.JSON(d)
}

// POST /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var body struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(c, "order.status", "order", err)
	}
	status := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(body.Status)))
	o, err := h.Orders.SetStatus(c.UserContext(), id, status)
	if err != nil {
		return fail(c, "order.status", err, map[string]any{"order_id": id, "status": status})
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": id, "status": o.Status})
	return c.JSON(fiber.Map{"id": id, "status": o.Status})
}

// DELETE /api/v1/orders/:id only succeeds for cancelled orders.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Orders.Delete(c.UserContext(), id); err != nil {
		return fail(c, "order.delete", err, map[string]any{"order_id": id})
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"deleted": id})
}
