package domain

// Placeholders used by read views when a reference does not resolve.
const (
	UnknownCategory = "Unknown Category"
	UnknownItem     = "Unknown Item"
	UnknownUser     = "Unknown User"
)

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
	Image  string `json:"image"`
}

func (c Category) Node() map[string]any {
	return map[string]any{"Id": c.ID, "Name": c.Name, "Season": c.Season, "Image": c.Image}
}

// Item ids are unique within their category only; CategoryID always equals
// the category the item is stored under.
type Item struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"categoryId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Inventory   int     `json:"inventory"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity"`
}

func (it Item) Node() map[string]any {
	return map[string]any{
		"Id":          it.ID,
		"Name":        it.Name,
		"Description": it.Description,
		"Price":       it.Price,
		"Unit":        it.Unit,
		"Inventory":   it.Inventory,
		"Image":       it.Image,
		"Type":        it.CategoryID,
		"Quantity":    it.Quantity,
	}
}

type CouponType string

const (
	CouponPercentage CouponType = "percentage"
	CouponFixed      CouponType = "fixed"
)

func (t CouponType) Valid() bool { return t == CouponPercentage || t == CouponFixed }

// Coupon.ProductRef is "categoryId/itemId".
type Coupon struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	Type          CouponType `json:"couponType"`
	DiscountValue float64    `json:"discountValue"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	ProductRef    string     `json:"productId"`
}

func (c Coupon) Node() map[string]any {
	return map[string]any{
		"Id":            c.ID,
		"description":   c.Description,
		"couponType":    string(c.Type),
		"discountValue": c.DiscountValue,
		"startDate":     c.StartDate,
		"endDate":       c.EndDate,
		"productId":     c.ProductRef,
	}
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderLine is the item snapshot taken when the order was placed.
type OrderLine struct {
	Key      string  `json:"key"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Image    string  `json:"image"`
}

// Order.OrderDate is epoch milliseconds; 0 when the record has none.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	OrderDate  float64     `json:"orderDate"`
	Status     OrderStatus `json:"status"`
	Items      []OrderLine `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
}

type Review struct {
	ID         string  `json:"id"`
	CategoryID string  `json:"categoryId"`
	ItemID     string  `json:"itemId"`
	UserName   string  `json:"userName"`
	Rating     float64 `json:"rating"`
	Comment    string  `json:"comment"`
	Date       string  `json:"date"`
}

type LikedItem struct {
	UserID     string  `json:"userId"`
	Key        string  `json:"key"`
	ItemID     string  `json:"itemId"`
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
}

// SoldItem keeps every stored field; only ProductRef is interpreted.
type SoldItem struct {
	Date       string         `json:"date"`
	Key        string         `json:"key"`
	ProductRef string         `json:"productRef"`
	Fields     map[string]any `json:"fields"`
}
