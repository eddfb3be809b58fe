package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "harvestdesk/internal/log"
	"harvestdesk/internal/media"
	"harvestdesk/internal/services"
)

type ItemHandler struct {
	Catalog *services.CatalogService
	Images  *media.Resolver
}

type itemForm struct {
	ID          string  `json:"id" form:"id"`
	Name        string  `json:"name" form:"name"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price"`
	Unit        string  `json:"unit" form:"unit"`
	Inventory   int     `json:"inventory" form:"inventory"`
	ImageRef    string  `json:"imageRef" form:"image_ref"`
}

func (f itemForm) input(up upload) services.ItemInput {
	return services.ItemInput{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Unit:        f.Unit,
		Inventory:   f.Inventory,
		ImageRef:    up.Ref,
		SaveImage:   up.Save,
	}
}

// GET /api/v1/items lists every category with its items.
func (h *ItemHandler) All(c *fiber.Ctx) error {
	groups, err := h.Catalog.AllItems(c.UserContext())
	if err != nil {
		return fail(c, "item.all", err, nil)
	}
	return c.JSON(fiber.Map{"categories": groups})
}

// GET /api/v1/categories/:cid/items/:iid
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	cid, iid := c.Params("cid"), c.Params("iid")
	it, err := h.Catalog.GetItem(c.UserContext(), cid, iid)
	if err != nil {
		return fail(c, "item.get", err, map[string]any{"category": cid, "item": iid})
	}
	return c.JSON(it)
}

// POST /api/v1/categories/:id/items (multipart, "image" file)
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	cid := c.Params("id")
	var f itemForm
	if err := c.BodyParser(&f); err != nil {
		return badBody(c, "item.create", "item", err)
	}
	fields := map[string]any{"category": cid, "item": f.ID}
	up, err := imageRef(c, h.Images, "item", f.ID, f.ImageRef)
	if err != nil {
		return fail(c, "item.create", err, fields)
	}
	it, err := h.Catalog.CreateItem(c.UserContext(), cid, f.input(up))
	if err != nil {
		return fail(c, "item.create", err, fields)
	}
	c.Status(fiber.StatusCreated)
	applog.Audit(c, "item.create", map[string]any{"category": cid, "item": it.ID, "price": it.Price, "inventory": it.Inventory})
	return c.JSON(it)
}

// PUT /api/v1/categories/:cid/items/:iid
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	cid, iid := c.Params("cid"), c.Params("iid")
	fields := map[string]any{"category": cid, "item": iid}
	var f itemForm
	if err := c.BodyParser(&f); err != nil {
		return badBody(c, "item.update", "item", err)
	}
	up, err := imageRef(c, h.Images, "item", iid, f.ImageRef)
	if err != nil {
		return fail(c, "item.update", err, fields)
	}
	it, err := h.Catalog.UpdateItem(c.UserContext(), cid, iid, f.input(up))
	if err != nil {
		return fail(c, "item.update", err, fields)
	}
	applog.Audit(c, "item.update", map[string]any{"category": cid, "item": iid, "price": it.Price, "inventory": it.Inventory})
	return c.JSON(it)
}

// DELETE /api/v1/categories/:cid/items/:iid
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	cid, iid := c.Params("cid"), c.Params("iid")
	fields := map[string]any{"category": cid, "item": iid}
	if err := h.Catalog.DeleteItem(c.UserContext(), cid, iid); err != nil {
		return fail(c, "item.delete", err, fields)
	}
	applog.Audit(c, "item.delete", fields)
	return c.JSON(fiber.Map{"deleted": cid + "/" + iid})
}
