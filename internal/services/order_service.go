package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"harvestdesk/internal/domain"
	applog "harvestdesk/internal/log"
	"harvestdesk/internal/media"
	"harvestdesk/internal/metrics"
	"harvestdesk/internal/repos"
)

type OrderService struct {
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Refs   *Refs
	Images *media.Resolver
}

func NewOrderService(orders *repos.OrderRepo, users *repos.UserRepo, refs *Refs, images *media.Resolver) *OrderService {
	return &OrderService{Orders: orders, Users: users, Refs: refs, Images: images}
}

// OrderSummary is one row of the orders listing.
type OrderSummary struct {
	ID         string             `json:"id"`
	UserID     string             `json:"userId"`
	UserName   string             `json:"userName"`
	OrderDate  float64            `json:"orderDate"`
	Status     domain.OrderStatus `json:"status"`
	TotalPrice float64            `json:"totalPrice"`
}

type OrderLineView struct {
	domain.OrderLine
	ImageURL string `json:"imageUrl"`
}

type OrderDetail struct {
	OrderSummary
	Items []OrderLineView `json:"items"`
}

// UserOrder is the projection shown on a user's page: no line items.
type UserOrder struct {
	ID         string             `json:"id"`
	OrderDate  float64            `json:"orderDate"`
	Status     domain.OrderStatus `json:"status"`
	TotalPrice float64            `json:"totalPrice"`
}

// SortByDate orders newest first. Orders without a date carry 0 and land
// last; ties keep their incoming order.
func SortByDate(orders []domain.Order) {
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderDate > orders[j].OrderDate })
}

func (s *OrderService) List(ctx context.Context) ([]OrderSummary, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	SortByDate(orders)
	names := map[string]string{}
	out := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		name, ok := names[o.UserID]
		if !ok {
			if name, err = s.userName(ctx, o.UserID); err != nil {
				return nil, err
			}
			names[o.UserID] = name
		}
		out = append(out, summarize(o, name))
	}
	return out, nil
}

func summarize(o domain.Order, userName string) OrderSummary {
	return OrderSummary{
		ID:         o.ID,
		UserID:     o.UserID,
		UserName:   userName,
		OrderDate:  o.OrderDate,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
	}
}

// userName resolves an order's owner softly.
func (s *OrderService) userName(ctx context.Context, uid string) (string, error) {
	u, err := s.Refs.ResolveUser(ctx, uid, Soft)
	switch {
	case err == nil && u.Name != "":
		return u.Name, nil
	case err == nil:
		return uid, nil
	case errors.Is(err, domain.ErrUnresolved):
		metrics.Unresolved.WithLabelValues("orders").Inc()
		return domain.UnknownUser, nil
	default:
		return "", err
	}
}

// Get returns the order with its line items and resolved images.
func (s *OrderService) Get(ctx context.Context, id string) (OrderDetail, error) {
	o, ok, err := s.Orders.Get(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}
	if !ok {
		return OrderDetail{}, domain.NotFound("order", id)
	}
	name, err := s.userName(ctx, o.UserID)
	if err != nil {
		return OrderDetail{}, err
	}
	d := OrderDetail{OrderSummary: summarize(o, name), Items: make([]OrderLineView, 0, len(o.Items))}
	for _, ln := range o.Items {
		d.Items = append(d.Items, OrderLineView{OrderLine: ln, ImageURL: s.Images.Resolve(ln.Image)})
	}
	return d, nil
}

// SetStatus moves an order to PAID or CANCELLED. The requested value is
// checked first, then the order, then the transition. Asking for the state
// the order already has changes nothing and succeeds.
func (s *OrderService) SetStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if status != domain.OrderPaid && status != domain.OrderCancelled {
		return domain.Order{}, reject(domain.InvalidTransition(id, "", string(status)))
	}
	o, ok, err := s.Orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		return domain.Order{}, domain.NotFound("order", id)
	}
	changed, err := domain.CheckTransition(id, o.Status, status)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return domain.Order{}, reject(de)
		}
		return domain.Order{}, err
	}
	if !changed {
		return o, nil
	}
	if err := s.Orders.UpdateStatus(ctx, id, status); err != nil {
		return domain.Order{}, fmt.Errorf("update status of order %s: %w", id, err)
	}
	o.Status = status
	return o, nil
}

// Delete removes a cancelled order, then its entry in the owner's order
// index. The index entry goes second: a crash in between leaves a stale id
// that UserOrders skips and a retry does not reach, since the order is gone.
// The stale entry is logged so it can be cleaned by hand.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	o, ok, err := s.Orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("order", id)
	}
	if o.Status != domain.OrderCancelled {
		return reject(domain.Precondition("order", id, "only cancelled orders can be deleted, this one is "+string(o.Status)))
	}
	if err := s.Orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	metrics.CascadeSteps.WithLabelValues("delete_order", "order").Inc()
	if err := s.Users.RemoveOrder(ctx, o.UserID, id); err != nil {
		applog.Error(nil, "order.index.stale", err, map[string]any{"order": id, "user": o.UserID})
		return fmt.Errorf("remove order %s from user %s: %w", id, o.UserID, err)
	}
	metrics.CascadeSteps.WithLabelValues("delete_order", "user_index").Inc()
	return nil
}

// UserOrders joins the user's order index with the orders. Ids in the index
// with no order behind them are skipped.
func (s *OrderService) UserOrders(ctx context.Context, uid string) ([]UserOrder, error) {
	u, ok, err := s.Users.ByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("user", uid)
	}
	out := make([]UserOrder, 0, len(u.OrderBills))
	for _, oid := range u.OrderBills {
		o, ok, err := s.Orders.Get(ctx, oid)
		if err != nil && !errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		if !ok {
			metrics.Unresolved.WithLabelValues("user_orders").Inc()
			continue
		}
		out = append(out, UserOrder{ID: oid, OrderDate: o.OrderDate, Status: o.Status, TotalPrice: o.TotalPrice})
	}
	return out, nil
}
