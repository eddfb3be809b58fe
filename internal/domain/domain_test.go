package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harvestdesk/internal/domain"
)

func TestCouponStatusBoundaries(t *testing.T) {
	c := domain.Coupon{StartDate: "2024-01-01", EndDate: "2024-01-31"}

	cases := []struct {
		today     string
		want      domain.CouponStatus
		deletable bool
	}{
		{"2023-12-31", domain.CouponUpcoming, false},
		{"2024-01-01", domain.CouponActive, false},
		{"2024-01-31", domain.CouponActive, false},
		{"2024-02-01", domain.CouponExpired, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, c.StatusOn(tc.today), tc.today)
		assert.Equal(t, tc.deletable, c.Deletable(tc.today), tc.today)
	}
}

func TestOrderStatusClasses(t *testing.T) {
	assert.True(t, domain.OrderPending.Valid())
	assert.False(t, domain.OrderStatus("SHIPPED").Valid())
	assert.True(t, domain.OrderPaid.Terminal())
	assert.True(t, domain.OrderCancelled.Terminal())
	assert.False(t, domain.OrderPending.Terminal())

	_, err := domain.CheckTransition("o1", "SHIPPED", domain.OrderPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCheckTransition(t *testing.T) {
	changed, err := domain.CheckTransition("o1", domain.OrderPending, domain.OrderPaid)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = domain.CheckTransition("o1", domain.OrderPending, domain.OrderCancelled)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = domain.CheckTransition("o1", domain.OrderPending, "SHIPPED")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = domain.CheckTransition("o1", domain.OrderPaid, domain.OrderPending)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = domain.CheckTransition("o1", domain.OrderPaid, domain.OrderCancelled)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	changed, err = domain.CheckTransition("o1", domain.OrderCancelled, domain.OrderCancelled)
	require.NoError(t, err)
	assert.False(t, changed, "re-issuing a terminal status is a no-op")
}

func TestDecodeItemTolerantFields(t *testing.T) {
	it, err := domain.DecodeItem("fruits", "mango", map[string]any{
		"name":      "Mango",
		"Price":     "45000",
		"Inventory": 12.0,
		"image":     "drawable/mango",
		"Type":      "somewhere-else",
	})
	require.NoError(t, err)
	assert.Equal(t, "Mango", it.Name)
	assert.Equal(t, 45000.0, it.Price)
	assert.Equal(t, 12, it.Inventory)
	assert.Equal(t, "drawable/mango", it.Image)
	assert.Equal(t, "fruits", it.CategoryID, "category comes from the path")
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := domain.DecodeItem("fruits", "x", map[string]any{"Name": "X", "Price": "cheap"})
	require.ErrorIs(t, err, domain.ErrValidation)
	de, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "Price", de.Field)

	_, err = domain.DecodeCategory("c", "just a string")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.DecodeCategory("c", map[string]any{"Season": "summer"})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.DecodeCoupon("k", map[string]any{
		"couponType": "bogus", "discountValue": 1.0, "startDate": "2024-01-01",
		"endDate": "2024-01-02", "productId": "a/b",
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestDecodeOrderDefaults(t *testing.T) {
	o, err := domain.DecodeOrder("k1", map[string]any{
		"userUId":   "u1",
		"orderDate": "not-a-date",
		"items": map[string]any{
			"b": map[string]any{"Name": "B", "Price": 2.0, "Quantity": 1.0},
			"a": map[string]any{"Name": "A", "Price": 1.0, "Quantity": 3.0},
			"x": "garbage",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "k1", o.ID)
	assert.Equal(t, 0.0, o.OrderDate)
	assert.Equal(t, domain.OrderPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "a", o.Items[0].Key)
}

func TestOrderIndexShapes(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, domain.OrderIndex(map[string]any{"b": true, "a": true}))
	assert.Equal(t, []string{"x"}, domain.OrderIndex([]any{"x", nil, 3.0}))
	assert.Equal(t, []string{"ob-x", "ob-y"}, domain.OrderIndex(map[string]any{"0": "ob-x", "1": "ob-y"}))
	assert.Equal(t, []string{"1003"}, domain.OrderIndex(map[string]any{"1003": true}))
	assert.Nil(t, domain.OrderIndex("nope"))
}
