package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"harvestdesk/internal/config"
	applog "harvestdesk/internal/log"
)

const bodyLimit = 2 << 20

// NewApp builds the fiber app with middleware, static images and routes.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    bodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Warn(c, "rate.limit.hit", nil, nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(Timeout(cfg.RequestTimeout))

	app.Static("/static/images", cfg.ImagesDir)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	Register(app.Group("/api/v1"), d)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
	})
	return app
}

// Timeout bounds the store calls of one request through its user context.
func Timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func Register(api fiber.Router, d *Deps) {
	api.Get("/categories", d.CategoryHandler.List)
	api.Post("/categories", d.CategoryHandler.Create)
	api.Get("/categories/:id", d.CategoryHandler.Get)
	api.Put("/categories/:id", d.CategoryHandler.Update)
	api.Delete("/categories/:id", d.CategoryHandler.Delete)

	api.Get("/items", d.ItemHandler.All)
	api.Post("/categories/:id/items", d.ItemHandler.Create)
	api.Get("/categories/:cid/items/:iid", d.ItemHandler.Get)
	api.Put("/categories/:cid/items/:iid", d.ItemHandler.Update)
	api.Delete("/categories/:cid/items/:iid", d.ItemHandler.Delete)

	api.Get("/coupons", d.CouponHandler.List)
	api.Post("/coupons", d.CouponHandler.Create)
	api.Get("/coupons/:id", d.CouponHandler.Get)
	api.Put("/coupons/:id", d.CouponHandler.Update)
	api.Delete("/coupons/:id", d.CouponHandler.Delete)

	api.Get("/orders", d.OrderHandler.List)
	api.Get("/orders/:id", d.OrderHandler.Get)
	api.Post("/orders/:id/status", d.OrderHandler.UpdateStatus)
	api.Delete("/orders/:id", d.OrderHandler.Delete)

	api.Get("/users", d.ViewHandler.Users)
	api.Get("/users/:id", d.ViewHandler.User)
	api.Get("/users/:id/orders", d.ViewHandler.UserOrders)
	api.Get("/reviews", d.ViewHandler.Reviews)
	api.Get("/reviews/:category/:item", d.ViewHandler.ItemReviews)
	api.Get("/liked-items", d.ViewHandler.LikedItems)
	api.Get("/sold-items", d.ViewHandler.SoldDays)
	api.Get("/sold-items/:date", d.ViewHandler.SoldOn)
}
