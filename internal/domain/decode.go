package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// record reads fields out of a loosely typed tree node. The stored data mixes
// capitalization and numeric encodings, so every getter accepts several key
// spellings and coerces numeric strings. The first problem found is kept.
type record struct {
	entity string
	id     string
	m      map[string]any
	err    *Error
}

func newRecord(entity, id string, node any) (*record, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, Invalid(entity, id, "", "record is not an object")
	}
	return &record{entity: entity, id: id, m: m}, nil
}

func (r *record) fail(field, msg string) {
	if r.err == nil {
		r.err = Invalid(r.entity, r.id, field, msg)
	}
}

func (r *record) lookup(keys ...string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := r.m[k]; ok && v != nil {
			return v, k, true
		}
	}
	return nil, keys[0], false
}

func (r *record) str(required bool, keys ...string) string {
	v, k, ok := r.lookup(keys...)
	if !ok {
		if required {
			r.fail(k, "required")
		}
		return ""
	}
	switch x := v.(type) {
	case string:
		if required && strings.TrimSpace(x) == "" {
			r.fail(k, "required")
		}
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		r.fail(k, "must be text")
		return ""
	}
}

func (r *record) num(required bool, keys ...string) float64 {
	v, k, ok := r.lookup(keys...)
	if !ok {
		if required {
			r.fail(k, "required")
		}
		return 0
	}
	f, ok := toFloat(v)
	if !ok {
		r.fail(k, "must be a number")
	}
	return f
}

func (r *record) integer(required bool, keys ...string) int {
	return int(r.num(required, keys...))
}

func (r *record) done() error {
	if r.err != nil {
		return r.err
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func DecodeCategory(key string, node any) (Category, error) {
	r, err := newRecord("category", key, node)
	if err != nil {
		return Category{}, err
	}
	c := Category{
		ID:     key,
		Name:   r.str(true, "Name", "name"),
		Season: strings.ToLower(r.str(false, "Season", "season")),
		Image:  r.str(false, "Image", "image"),
	}
	return c, r.done()
}

// DecodeItem takes the category id from the path the item lives under.
func DecodeItem(categoryID, key string, node any) (Item, error) {
	r, err := newRecord("item", key, node)
	if err != nil {
		return Item{}, err
	}
	it := Item{
		ID:          key,
		CategoryID:  categoryID,
		Name:        r.str(true, "Name", "name"),
		Description: r.str(false, "Description", "description"),
		Price:       r.num(true, "Price", "price"),
		Unit:        r.str(false, "Unit", "unit"),
		Inventory:   r.integer(false, "Inventory", "inventory"),
		Image:       r.str(false, "Image", "image"),
		Quantity:    r.integer(false, "Quantity", "quantity"),
	}
	return it, r.done()
}

func DecodeCoupon(key string, node any) (Coupon, error) {
	r, err := newRecord("coupon", key, node)
	if err != nil {
		return Coupon{}, err
	}
	c := Coupon{
		ID:            key,
		Description:   r.str(false, "description", "Description"),
		Type:          CouponType(r.str(true, "couponType", "type")),
		DiscountValue: r.num(true, "discountValue"),
		StartDate:     r.str(true, "startDate"),
		EndDate:       r.str(true, "endDate"),
		ProductRef:    r.str(true, "productId", "productRef"),
	}
	if c.Type != "" && !c.Type.Valid() {
		r.fail("couponType", "must be percentage or fixed")
	}
	return c, r.done()
}

// DecodeOrder tolerates a missing or unparseable orderDate (read as 0) and a
// missing status (read as PENDING, the initial state).
func DecodeOrder(key string, node any) (Order, error) {
	r, err := newRecord("order", key, node)
	if err != nil {
		return Order{}, err
	}
	o := Order{
		ID:         r.str(false, "orderBillId", "Id", "id"),
		UserID:     r.str(false, "userUId", "userId"),
		Status:     OrderStatus(strings.ToUpper(r.str(false, "status"))),
		TotalPrice: r.num(false, "totalPrice"),
	}
	if o.ID == "" {
		o.ID = key
	}
	if v, _, ok := r.lookup("orderDate"); ok {
		o.OrderDate, _ = toFloat(v)
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	if v, _, ok := r.lookup("items"); ok {
		lines, _ := v.(map[string]any)
		for _, k := range sortedKeys(lines) {
			if ln, err := decodeLine(k, lines[k]); err == nil {
				o.Items = append(o.Items, ln)
			}
		}
	}
	return o, r.done()
}

func decodeLine(key string, node any) (OrderLine, error) {
	r, err := newRecord("order line", key, node)
	if err != nil {
		return OrderLine{}, err
	}
	ln := OrderLine{
		Key:      key,
		ID:       r.str(false, "Id", "id"),
		Name:     r.str(false, "Name", "name"),
		Price:    r.num(false, "Price", "price"),
		Quantity: r.integer(false, "Quantity", "quantity"),
		Unit:     r.str(false, "Unit", "unit"),
		Image:    r.str(false, "Image", "image"),
	}
	return ln, r.done()
}

func DecodeUser(key string, node any) (User, error) {
	r, err := newRecord("user", key, node)
	if err != nil {
		return User{}, err
	}
	u := User{
		ID:      key,
		Name:    r.str(false, "name", "Name", "fullName"),
		Email:   r.str(false, "email", "Email"),
		Phone:   r.str(false, "phone", "Phone"),
		Address: r.str(false, "address", "Address"),
	}
	if v, _, ok := r.lookup("orderBills"); ok {
		u.OrderBills = OrderIndex(v)
	}
	return u, r.done()
}

// OrderIndex reads a user's order index, stored either as {orderId: true}
// or as a list of ids. A stored list comes back from the tree as
// {"0": id, "1": id, ...}.
func OrderIndex(v any) []string {
	switch x := v.(type) {
	case map[string]any:
		var out []string
		seen := make(map[string]bool, len(x))
		for _, k := range sortedKeys(x) {
			id, ok := IndexEntry(k, x[k])
			if ok && !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
		return out
	case []any:
		var out []string
		for _, e := range x {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// IndexEntry returns the order id one index entry stands for. A numeric key
// holding a string is a list slot and names its value; any other entry names
// its key.
func IndexEntry(k string, v any) (string, bool) {
	if s, ok := v.(string); ok && isSlot(k) {
		return s, s != ""
	}
	return k, k != ""
}

func isSlot(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func DecodeReview(categoryID, itemID, key string, node any) (Review, error) {
	r, err := newRecord("review", key, node)
	if err != nil {
		return Review{}, err
	}
	rv := Review{
		ID:         key,
		CategoryID: categoryID,
		ItemID:     itemID,
		UserName:   r.str(false, "userName", "UserName", "name"),
		Rating:     r.num(false, "rating", "Rating"),
		Comment:    r.str(false, "comment", "Comment"),
		Date:       r.str(false, "date", "Date"),
	}
	return rv, r.done()
}

func DecodeLikedItem(userID, key string, node any) (LikedItem, error) {
	r, err := newRecord("liked item", key, node)
	if err != nil {
		return LikedItem{}, err
	}
	li := LikedItem{
		UserID:     userID,
		Key:        key,
		ItemID:     r.str(false, "Id", "id"),
		CategoryID: r.str(false, "Type", "type"),
		Name:       r.str(false, "Name", "name"),
		Price:      r.num(false, "Price", "price"),
		Image:      r.str(false, "Image", "image"),
	}
	if li.ItemID == "" {
		li.ItemID = key
	}
	return li, r.done()
}

// DecodeSoldItem only requires an object; a missing product reference is
// left empty and shows up as unresolved in views.
func DecodeSoldItem(date, key string, node any) (SoldItem, error) {
	r, err := newRecord("sold item", key, node)
	if err != nil {
		return SoldItem{}, err
	}
	si := SoldItem{
		Date:       date,
		Key:        key,
		ProductRef: r.str(false, "Id", "id", "productId"),
		Fields:     r.m,
	}
	return si, r.done()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
