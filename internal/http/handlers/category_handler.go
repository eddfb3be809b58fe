package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "harvestdesk/internal/log"
	"harvestdesk/internal/media"
	"harvestdesk/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
	Images  *media.Resolver
}

type categoryForm struct {
	ID       string `json:"id" form:"id"`
	Name     string `json:"name" form:"name"`
	Season   string `json:"season" form:"season"`
	ImageRef string `json:"imageRef" form:"image_ref"`
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, "category.list", err, nil)
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	view, err := h.Catalog.GetCategory(c.UserContext(), id)
	if err != nil {
		return fail(c, "category.get", err, map[string]any{"category": id})
	}
	return c.JSON(view)
}

// POST /api/v1/categories (multipart, "image" file)
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var f categoryForm
	if err := c.BodyParser(&f); err != nil {
		return badBody(c, "category.create", "category", err)
	}
	up, err := imageRef(c, h.Images, "category", f.ID, f.ImageRef)
	if err != nil {
		return fail(c, "category.create", err, map[string]any{"category": f.ID})
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), services.CategoryInput{
		ID: f.ID, Name: f.Name, Season: f.Season, ImageRef: up.Ref, SaveImage: up.Save,
	})
	if err != nil {
		return fail(c, "category.create", err, map[string]any{"category": f.ID})
	}
	c.Status(fiber.StatusCreated)
	applog.Audit(c, "category.create", map[string]any{"category": cat.ID, "image": cat.Image})
	return c.JSON(cat)
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var f categoryForm
	if err := c.BodyParser(&f); err != nil {
		return badBody(c, "category.update", "category", err)
	}
	up, err := imageRef(c, h.Images, "category", id, f.ImageRef)
	if err != nil {
		return fail(c, "category.update", err, map[string]any{"category": id})
	}
	cat, err := h.Catalog.UpdateCategory(c.UserContext(), id, services.CategoryInput{
		ID: f.ID, Name: f.Name, Season: f.Season, ImageRef: up.Ref, SaveImage: up.Save,
	})
	if err != nil {
		return fail(c, "category.update", err, map[string]any{"category": id})
	}
	applog.Audit(c, "category.update", map[string]any{"category": id})
	return c.JSON(cat)
}

// DELETE /api/v1/categories/:id removes the category and all its items.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.Catalog.DeleteCategory(c.UserContext(), id); err != nil {
		return fail(c, "category.delete", err, map[string]any{"category": id})
	}
	applog.Audit(c, "category.delete", map[string]any{"category": id})
	return c.JSON(fiber.Map{"deleted": id})
}
