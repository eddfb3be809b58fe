package domain

type CouponStatus string

const (
	CouponUpcoming CouponStatus = "upcoming"
	CouponActive   CouponStatus = "active"
	CouponExpired  CouponStatus = "expired"
)

// StatusOn classifies a coupon for the given day. Dates are YYYY-MM-DD and
// compare as strings. The end date itself is still active.
func StatusOn(today, start, end string) CouponStatus {
	switch {
	case today < start:
		return CouponUpcoming
	case today > end:
		return CouponExpired
	default:
		return CouponActive
	}
}

func (c Coupon) StatusOn(today string) CouponStatus { return StatusOn(today, c.StartDate, c.EndDate) }

// Deletable reports whether the coupon may be removed on the given day.
func (c Coupon) Deletable(today string) bool { return c.StatusOn(today) == CouponExpired }

func (s OrderStatus) Valid() bool {
	return s == OrderPending || s == OrderPaid || s == OrderCancelled
}

func (s OrderStatus) Terminal() bool { return s == OrderPaid || s == OrderCancelled }

// CheckTransition validates an order status change. Only PAID and CANCELLED
// may be requested, only PENDING may leave its state, and asking for the
// state the order is already in is accepted without a change.
func CheckTransition(orderID string, from, to OrderStatus) (changed bool, err error) {
	if !to.Terminal() {
		return false, InvalidTransition(orderID, string(from), string(to))
	}
	if from == to {
		return false, nil
	}
	if !from.Valid() || from.Terminal() {
		return false, InvalidTransition(orderID, string(from), string(to))
	}
	return true, nil
}
