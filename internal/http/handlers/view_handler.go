package handlers

import (
	"github.com/gofiber/fiber/v2"

	"harvestdesk/internal/services"
)

// ViewHandler serves the read-only views: users, reviews, liked items and
// sold items.
type ViewHandler struct {
	Views  *services.ViewService
	Orders *services.OrderService
}

func (h *ViewHandler) Users(c *fiber.Ctx) error {
	users, err := h.Views.ListUsers(c.UserContext())
	if err != nil {
		return fail(c, "user.list", err, nil)
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *ViewHandler) User(c *fiber.Ctx) error {
	id := c.Params("id")
	u, err := h.Views.GetUser(c.UserContext(), id)
	if err != nil {
		return fail(c, "user.get", err, map[string]any{"user": id})
	}
	return c.JSON(u)
}

// GET /api/v1/users/:id/orders
func (h *ViewHandler) UserOrders(c *fiber.Ctx) error {
	id := c.Params("id")
	list, err := h.Orders.UserOrders(c.UserContext(), id)
	if err != nil {
		return fail(c, "user.orders", err, map[string]any{"user": id})
	}
	return c.JSON(fiber.Map{"user": id, "orders": list})
}

func (h *ViewHandler) Reviews(c *fiber.Ctx) error {
	revs, err := h.Views.Reviews(c.UserContext())
	if err != nil {
		return fail(c, "review.list", err, nil)
	}
	return c.JSON(fiber.Map{"reviews": revs})
}

// GET /api/v1/reviews/:category/:item
func (h *ViewHandler) ItemReviews(c *fiber.Ctx) error {
	cat, item := c.Params("category"), c.Params("item")
	revs, err := h.Views.ItemReviews(c.UserContext(), cat, item)
	if err != nil {
		return fail(c, "review.item", err, map[string]any{"category": cat, "item": item})
	}
	return c.JSON(fiber.Map{"reviews": revs})
}

func (h *ViewHandler) LikedItems(c *fiber.Ctx) error {
	items, err := h.Views.LikedItems(c.UserContext())
	if err != nil {
		return fail(c, "liked.list", err, nil)
	}
	return c.JSON(fiber.Map{"likedItems": items})
}

func (h *ViewHandler) SoldDays(c *fiber.Ctx) error {
	days, err := h.Views.SoldDays(c.UserContext())
	if err != nil {
		return fail(c, "sold.days", err, nil)
	}
	return c.JSON(fiber.Map{"days": days})
}

// GET /api/v1/sold-items/:date
func (h *ViewHandler) SoldOn(c *fiber.Ctx) error {
	date := c.Params("date")
	items, err := h.Views.SoldOn(c.UserContext(), date)
	if err != nil {
		return fail(c, "sold.day", err, map[string]any{"date": date})
	}
	return c.JSON(fiber.Map{"date": date, "items": items})
}
