package services

import (
	"context"
	"errors"
	"fmt"

	"harvestdesk/internal/domain"
	applog "harvestdesk/internal/log"
	"harvestdesk/internal/media"
	"harvestdesk/internal/metrics"
	"harvestdesk/internal/repos"
	"harvestdesk/internal/validate"
)

type CatalogService struct {
	Paths  repos.Paths
	Cats   *repos.CategoryRepo
	Items  *repos.ItemRepo
	Guard  *Guard
	Images *media.Resolver
	// SeedPlaceholder adds a placeholder item to every new category.
	SeedPlaceholder bool
}

func NewCatalogService(p repos.Paths, cats *repos.CategoryRepo, items *repos.ItemRepo, guard *Guard, images *media.Resolver) *CatalogService {
	return &CatalogService{Paths: p, Cats: cats, Items: items, Guard: guard, Images: images}
}

// CategoryInput holds the editable fields of a category. SaveImage, when set,
// writes the file behind ImageRef and runs only once every check has passed.
type CategoryInput struct {
	ID        string
	Name      string
	Season    string
	ImageRef  string
	SaveImage func() error
}

// ItemInput holds the editable fields of an item. Quantity is not editable
// and the category comes from the path. SaveImage works as in CategoryInput.
type ItemInput struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Unit        string
	Inventory   int
	ImageRef    string
	SaveImage   func() error
}

func saveImage(save func() error) error {
	if save == nil {
		return nil
	}
	return save()
}

// found treats a stored record that fails to decode as present: it occupies
// its path and can still be replaced or removed.
func found(ok bool, err error) (bool, error) {
	if err != nil && !errors.Is(err, domain.ErrValidation) {
		return false, err
	}
	return ok, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]CategoryView, error) {
	cats, err := s.Cats.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, s.categoryView(c))
	}
	return out, nil
}

// GetCategory returns the category with its items. A category without items
// comes back with Empty set.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (CategoryItemsView, error) {
	c, ok, err := s.Cats.Get(ctx, id)
	if err != nil {
		return CategoryItemsView{}, err
	}
	if !ok {
		return CategoryItemsView{}, domain.NotFound("category", id)
	}
	items, err := s.Items.ListByCategory(ctx, id)
	if err != nil {
		return CategoryItemsView{}, err
	}
	return s.categoryItems(s.categoryView(c), items), nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	c, err := s.categoryFromInput(in.ID, in)
	if err != nil {
		return domain.Category{}, err
	}
	if c.Image == "" {
		return domain.Category{}, reject(domain.Invalid("category", c.ID, "image", "an image is required"))
	}
	if err := s.Guard.EnsureUnique(ctx, "category", s.Paths.Categories(), c.ID); err != nil {
		return domain.Category{}, err
	}
	if err := saveImage(in.SaveImage); err != nil {
		return domain.Category{}, err
	}
	created, err := s.Cats.Create(ctx, c)
	if err != nil {
		return domain.Category{}, err
	}
	if !created {
		return domain.Category{}, reject(domain.Conflict("category", c.ID))
	}
	if s.SeedPlaceholder {
		if err := s.Items.Put(ctx, placeholderItem(c)); err != nil {
			applog.Error(nil, "category.placeholder.fail", err, map[string]any{"category": c.ID})
		}
	}
	return c, nil
}

func placeholderItem(c domain.Category) domain.Item {
	return domain.Item{
		ID:          c.ID + "_placeholder",
		CategoryID:  c.ID,
		Name:        "Placeholder for " + c.Name,
		Description: "This is a placeholder item. You can delete it after adding real items.",
		Unit:        "unit",
		Image:       "drawable/placeholder",
	}
}

// UpdateCategory replaces the record. An empty ImageRef keeps the stored image.
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (domain.Category, error) {
	cur, ok, err := s.Cats.Get(ctx, id)
	if ok, err = found(ok, err); err != nil {
		return domain.Category{}, err
	}
	if !ok {
		return domain.Category{}, domain.NotFound("category", id)
	}
	if in.ID != "" && in.ID != id {
		return domain.Category{}, reject(domain.Invalid("category", id, "id", "id cannot change"))
	}
	c, err := s.categoryFromInput(id, in)
	if err != nil {
		return domain.Category{}, err
	}
	if c.Image == "" {
		c.Image = cur.Image
	}
	if err := saveImage(in.SaveImage); err != nil {
		return domain.Category{}, err
	}
	if err := s.Cats.Put(ctx, c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) categoryFromInput(id string, in CategoryInput) (domain.Category, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Category{}, reject(domain.Invalid("category", id, "id", "letters, digits, '-' and '_' only"))
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Category{}, reject(domain.Invalid("category", id, "name", "required, at most 80 characters"))
	}
	season, ok := validate.Season(in.Season)
	if !ok {
		return domain.Category{}, reject(domain.Invalid("category", id, "season", "required lowercase tag"))
	}
	c := domain.Category{ID: id, Name: name, Season: season}
	if in.ImageRef != "" {
		ref, ok := validate.ImageRef(in.ImageRef)
		if !ok {
			return domain.Category{}, reject(domain.Invalid("category", id, "image", "malformed image reference"))
		}
		c.Image = ref
	}
	return c, nil
}

// DeleteCategory removes the category's items, then the category. Children go
// first so an interrupted run leaves at worst an orphaned items subtree, and
// running it again finishes the job. Once the category is gone a repeat call
// reports NotFound.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) (domain.Category, error) {
	c, ok, err := s.Cats.Get(ctx, id)
	if ok, err = found(ok, err); err != nil {
		return domain.Category{}, err
	}
	if !ok {
		return domain.Category{}, domain.NotFound("category", id)
	}
	if err := s.Items.DeleteCategory(ctx, id); err != nil {
		return domain.Category{}, fmt.Errorf("delete items of category %s: %w", id, err)
	}
	metrics.CascadeSteps.WithLabelValues("delete_category", "items").Inc()
	if err := s.Cats.Delete(ctx, id); err != nil {
		return domain.Category{}, fmt.Errorf("delete category %s: %w", id, err)
	}
	metrics.CascadeSteps.WithLabelValues("delete_category", "category").Inc()
	c.ID = id
	return c, nil
}

func (s *CatalogService) GetItem(ctx context.Context, catID, itemID string) (ItemView, error) {
	it, ok, err := s.Items.Get(ctx, catID, itemID)
	if err != nil {
		return ItemView{}, err
	}
	if !ok {
		return ItemView{}, domain.NotFound("item", catID+"/"+itemID)
	}
	return s.itemView(it), nil
}

func (s *CatalogService) CreateItem(ctx context.Context, catID string, in ItemInput) (domain.Item, error) {
	_, ok, err := s.Cats.Get(ctx, catID)
	if ok, err = found(ok, err); err != nil {
		return domain.Item{}, err
	}
	if !ok {
		return domain.Item{}, domain.NotFound("category", catID)
	}
	it, err := itemFromInput(catID, in.ID, in)
	if err != nil {
		return domain.Item{}, err
	}
	if it.Image == "" {
		return domain.Item{}, reject(domain.Invalid("item", it.ID, "image", "an image is required"))
	}
	if err := s.Guard.EnsureUnique(ctx, "item", s.Paths.CategoryItems(catID), it.ID); err != nil {
		return domain.Item{}, err
	}
	if err := saveImage(in.SaveImage); err != nil {
		return domain.Item{}, err
	}
	created, err := s.Items.Create(ctx, it)
	if err != nil {
		return domain.Item{}, err
	}
	if !created {
		return domain.Item{}, reject(domain.Conflict("item", it.ID))
	}
	return it, nil
}

// UpdateItem replaces the record, keeping Quantity and, when ImageRef is
// empty, the stored image.
func (s *CatalogService) UpdateItem(ctx context.Context, catID, itemID string, in ItemInput) (domain.Item, error) {
	cur, ok, err := s.Items.Get(ctx, catID, itemID)
	if ok, err = found(ok, err); err != nil {
		return domain.Item{}, err
	}
	if !ok {
		return domain.Item{}, domain.NotFound("item", catID+"/"+itemID)
	}
	if in.ID != "" && in.ID != itemID {
		return domain.Item{}, reject(domain.Invalid("item", itemID, "id", "id cannot change"))
	}
	it, err := itemFromInput(catID, itemID, in)
	if err != nil {
		return domain.Item{}, err
	}
	it.Quantity = cur.Quantity
	if it.Image == "" {
		it.Image = cur.Image
	}
	if err := saveImage(in.SaveImage); err != nil {
		return domain.Item{}, err
	}
	if err := s.Items.Put(ctx, it); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}

func itemFromInput(catID, id string, in ItemInput) (domain.Item, error) {
	id, ok := validate.ID(id)
	if !ok {
		return domain.Item{}, reject(domain.Invalid("item", id, "id", "letters, digits, '-' and '_' only"))
	}
	it := domain.Item{ID: id, CategoryID: catID, Price: in.Price, Inventory: in.Inventory}
	if it.Name, ok = validate.Name(in.Name); !ok {
		return domain.Item{}, reject(domain.Invalid("item", id, "name", "required, at most 80 characters"))
	}
	if it.Description, ok = validate.Text(in.Description); !ok {
		return domain.Item{}, reject(domain.Invalid("item", id, "description", "required"))
	}
	if it.Unit, ok = validate.Name(in.Unit); !ok {
		return domain.Item{}, reject(domain.Invalid("item", id, "unit", "required"))
	}
	if !validate.Money(in.Price) {
		return domain.Item{}, reject(domain.Invalid("item", id, "price", "must be zero or more"))
	}
	if in.Inventory < 0 {
		return domain.Item{}, reject(domain.Invalid("item", id, "inventory", "must be zero or more"))
	}
	if in.ImageRef != "" {
		ref, ok := validate.ImageRef(in.ImageRef)
		if !ok {
			return domain.Item{}, reject(domain.Invalid("item", id, "image", "malformed image reference"))
		}
		it.Image = ref
	}
	return it, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, catID, itemID string) error {
	_, ok, err := s.Items.Get(ctx, catID, itemID)
	if ok, err = found(ok, err); err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("item", catID+"/"+itemID)
	}
	return s.Items.Delete(ctx, catID, itemID)
}

// AllItems groups every stored item under its category. Item groups whose
// category record is gone are listed last under the placeholder name.
func (s *CatalogService) AllItems(ctx context.Context) ([]CategoryItemsView, error) {
	cats, err := s.Cats.List(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.Items.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryItemsView, 0, len(cats))
	seen := make(map[string]bool, len(cats))
	for _, c := range cats {
		seen[c.ID] = true
		out = append(out, s.categoryItems(s.categoryView(c), groups[c.ID]))
	}
	for _, c := range sortedGroupKeys(groups) {
		if seen[c] {
			continue
		}
		metrics.Unresolved.WithLabelValues("all_items").Inc()
		cv := s.categoryView(domain.Category{ID: c, Name: domain.UnknownCategory})
		out = append(out, s.categoryItems(cv, groups[c]))
	}
	return out, nil
}

func (s *CatalogService) categoryItems(cv CategoryView, items []domain.Item) CategoryItemsView {
	view := CategoryItemsView{Category: cv, Items: make([]ItemView, 0, len(items)), Empty: len(items) == 0}
	for _, it := range items {
		view.Items = append(view.Items, s.itemView(it))
	}
	return view
}

func (s *CatalogService) categoryView(c domain.Category) CategoryView {
	return CategoryView{Category: c, ImageURL: s.Images.Resolve(c.Image)}
}

func (s *CatalogService) itemView(it domain.Item) ItemView {
	return ItemView{Item: it, ImageURL: s.Images.Resolve(it.Image)}
}
