package handlers

import (
	"harvestdesk/internal/config"
	"harvestdesk/internal/media"
	"harvestdesk/internal/repos"
	"harvestdesk/internal/services"
	"harvestdesk/internal/store"
)

type Deps struct {
	CategoryHandler *CategoryHandler
	ItemHandler     *ItemHandler
	CouponHandler   *CouponHandler
	OrderHandler    *OrderHandler
	ViewHandler     *ViewHandler
}

func NewDeps(s store.PathStore, cfg config.Config) *Deps {
	p := repos.Paths{Root: cfg.RootPath}
	catRepo := repos.NewCategoryRepo(s, p)
	itemRepo := repos.NewItemRepo(s, p)
	couponRepo := repos.NewCouponRepo(s, p)
	orderRepo := repos.NewOrderRepo(s, p)
	userRepo := repos.NewUserRepo(s, p)
	activityRepo := repos.NewActivityRepo(s, p)

	images := media.NewResolver(cfg.ImagesDir)
	guard := services.NewGuard(s)
	refs := services.NewRefs(itemRepo, userRepo)

	catalogSvc := services.NewCatalogService(p, catRepo, itemRepo, guard, images)
	catalogSvc.SeedPlaceholder = cfg.SeedPlaceholder
	couponSvc := services.NewCouponService(p, couponRepo, guard, refs)
	orderSvc := services.NewOrderService(orderRepo, userRepo, refs, images)
	viewSvc := services.NewViewService(catRepo, refs, activityRepo, userRepo, images)

	return &Deps{
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc, Images: images},
		ItemHandler:     &ItemHandler{Catalog: catalogSvc, Images: images},
		CouponHandler:   &CouponHandler{Coupons: couponSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		ViewHandler:     &ViewHandler{Views: viewSvc, Orders: orderSvc},
	}
}
