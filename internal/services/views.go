package services

import (
	"context"
	"errors"
	"sort"

	"harvestdesk/internal/domain"
	"harvestdesk/internal/media"
	"harvestdesk/internal/metrics"
	"harvestdesk/internal/repos"
)

type CategoryView struct {
	domain.Category
	ImageURL string `json:"imageUrl"`
}

type ItemView struct {
	domain.Item
	ImageURL string `json:"imageUrl"`
}

// CategoryItemsView is a category joined with its items. Empty is the
// explicit "no items" signal.
type CategoryItemsView struct {
	Category CategoryView `json:"category"`
	Items    []ItemView   `json:"items"`
	Empty    bool         `json:"empty"`
}

// SoldItemView is a sold-item record enriched from the catalog. Unresolved
// joins leave the placeholder names with a zero price.
type SoldItemView struct {
	Key          string         `json:"key"`
	Date         string         `json:"date"`
	ProductRef   string         `json:"productRef"`
	CategoryName string         `json:"categoryName"`
	ItemName     string         `json:"itemName"`
	Price        float64        `json:"price"`
	Unit         string         `json:"unit"`
	ImageURL     string         `json:"imageUrl"`
	Resolved     bool           `json:"resolved"`
	Fields       map[string]any `json:"fields"`
}

type ReviewView struct {
	domain.Review
	ItemName string `json:"itemName"`
}

type LikedItemView struct {
	domain.LikedItem
	ImageURL string `json:"imageUrl"`
}

// ViewService builds the read-only views over customer activity and users.
type ViewService struct {
	Cats     *repos.CategoryRepo
	Refs     *Refs
	Activity *repos.ActivityRepo
	Users    *repos.UserRepo
	Images   *media.Resolver
}

func NewViewService(cats *repos.CategoryRepo, refs *Refs, activity *repos.ActivityRepo, users *repos.UserRepo, images *media.Resolver) *ViewService {
	return &ViewService{Cats: cats, Refs: refs, Activity: activity, Users: users, Images: images}
}

func (s *ViewService) SoldDays(ctx context.Context) ([]repos.SoldDay, error) {
	return s.Activity.SoldDays(ctx)
}

// SoldOn lists the sold items of one date. A record whose product no longer
// exists still shows, with placeholder names.
func (s *ViewService) SoldOn(ctx context.Context, date string) ([]SoldItemView, error) {
	recs, err := s.Activity.SoldOn(ctx, date)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SoldItemView, 0, len(recs))
	for _, r := range recs {
		v := SoldItemView{
			Key:          r.Key,
			Date:         r.Date,
			ProductRef:   r.ProductRef,
			CategoryName: domain.UnknownCategory,
			ItemName:     domain.UnknownItem,
			ImageURL:     s.Images.Resolve(""),
			Fields:       r.Fields,
		}
		if pr, ok := ParseProductRef(r.ProductRef); ok {
			if n, ok := names[pr.CategoryID]; ok {
				v.CategoryName = n
			}
		}
		it, err := s.Refs.ResolveProductRef(ctx, r.ProductRef, Soft)
		switch {
		case err == nil:
			v.ItemName, v.Price, v.Unit = it.Name, it.Price, it.Unit
			v.ImageURL = s.Images.Resolve(it.Image)
			v.Resolved = true
		case errors.Is(err, domain.ErrUnresolved):
			metrics.Unresolved.WithLabelValues("sold_items").Inc()
		default:
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// categoryNames prefetches the category names once per listing.
func (s *ViewService) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := s.Cats.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (s *ViewService) Reviews(ctx context.Context) ([]ReviewView, error) {
	revs, err := s.Activity.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	return s.reviewViews(ctx, revs)
}

func (s *ViewService) ItemReviews(ctx context.Context, catID, itemID string) ([]ReviewView, error) {
	revs, err := s.Activity.ItemReviews(ctx, catID, itemID)
	if err != nil {
		return nil, err
	}
	return s.reviewViews(ctx, revs)
}

func (s *ViewService) reviewViews(ctx context.Context, revs []domain.Review) ([]ReviewView, error) {
	names := map[string]string{}
	out := make([]ReviewView, 0, len(revs))
	for _, rv := range revs {
		ref := ProductRef{CategoryID: rv.CategoryID, ItemID: rv.ItemID}.String()
		name, ok := names[ref]
		if !ok {
			it, err := s.Refs.ResolveProductRef(ctx, ref, Soft)
			switch {
			case err == nil:
				name = it.Name
			case errors.Is(err, domain.ErrUnresolved):
				metrics.Unresolved.WithLabelValues("reviews").Inc()
				name = domain.UnknownItem
			default:
				return nil, err
			}
			names[ref] = name
		}
		out = append(out, ReviewView{Review: rv, ItemName: name})
	}
	return out, nil
}

func (s *ViewService) LikedItems(ctx context.Context) ([]LikedItemView, error) {
	items, err := s.Activity.LikedItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LikedItemView, 0, len(items))
	for _, li := range items {
		out = append(out, LikedItemView{LikedItem: li, ImageURL: s.Images.Resolve(li.Image)})
	}
	return out, nil
}

func (s *ViewService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Users.List(ctx)
}

func (s *ViewService) GetUser(ctx context.Context, id string) (domain.User, error) {
	u, ok, err := s.Users.ByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, domain.NotFound("user", id)
	}
	return u, nil
}

func sortedGroupKeys(m map[string][]domain.Item) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
