package store

import (
	"context"
	"log"
)

// SeedIfEmpty writes a small demo tree under root when nothing lives there yet.
// Safe to run on every start.
func SeedIfEmpty(ctx context.Context, s PathStore, root string) error {
	v, err := s.Get(ctx, root)
	if err != nil {
		return err
	}
	if v != nil {
		return nil
	}
	log.Println("[seed] inserting demo categories/items/coupons/orders")
	return s.Set(ctx, root, demoTree())
}

func demoTree() map[string]any {
	return map[string]any{
		"Categories": map[string]any{
			"fruits": map[string]any{
				"Id": "fruits", "Name": "Fruits", "Season": "summer", "Image": "drawable/fruits",
			},
			"vegetables": map[string]any{
				"Id": "vegetables", "Name": "Vegetables", "Season": "all", "Image": "drawable/vegetables",
			},
		},
		"CategoriesItems": map[string]any{
			"fruits": map[string]any{
				"mango": map[string]any{
					"Id": "mango", "Name": "Cat Chu Mango", "Description": "Sweet mango from Dong Thap",
					"Price": 45000.0, "Unit": "kg", "Inventory": 120, "Image": "drawable/mango",
					"Type": "fruits", "Quantity": 0,
				},
				"lychee": map[string]any{
					"Id": "lychee", "Name": "Thieu Lychee", "Description": "Early season lychee",
					"Price": 60000.0, "Unit": "kg", "Inventory": 40, "Image": "drawable/lychee",
					"Type": "fruits", "Quantity": 0,
				},
			},
			"vegetables": map[string]any{
				"spinach": map[string]any{
					"Id": "spinach", "Name": "Water Spinach", "Description": "Fresh bunches",
					"Price": 12000.0, "Unit": "bunch", "Inventory": 200, "Image": "drawable/spinach",
					"Type": "vegetables", "Quantity": 0,
				},
			},
		},
		"Coupons": map[string]any{
			"SUMMER10": map[string]any{
				"Id": "SUMMER10", "description": "10% off mangoes", "couponType": "percentage",
				"discountValue": 10.0, "startDate": "2024-06-01", "endDate": "2099-08-31",
				"productId": "fruits/mango",
			},
			"OLD5K": map[string]any{
				"Id": "OLD5K", "description": "5000 off spinach", "couponType": "fixed",
				"discountValue": 5000.0, "startDate": "2023-01-01", "endDate": "2023-01-31",
				"productId": "vegetables/spinach",
			},
		},
		"Users": map[string]any{
			"u-lan": map[string]any{
				"name": "Lan Nguyen", "email": "lan@harvestdesk.test", "phone": "0900000001",
				"address": "12 Le Loi, Hue",
				"orderBills": map[string]any{"ob-1001": true, "ob-1002": true},
			},
			"u-minh": map[string]any{
				"name": "Minh Tran", "email": "minh@harvestdesk.test", "phone": "0900000002",
				"address": "3 Tran Phu, Da Nang",
				"orderBills": map[string]any{"ob-1003": true},
			},
		},
		"OrderBills": map[string]any{
			"ob-1001": map[string]any{
				"orderBillId": "ob-1001", "userUId": "u-lan", "orderDate": 1717200000000.0,
				"status": "PAID", "totalPrice": 90000.0,
				"items": map[string]any{
					"mango": map[string]any{"Id": "mango", "Name": "Cat Chu Mango", "Price": 45000.0, "Quantity": 2, "Image": "drawable/mango"},
				},
			},
			"ob-1002": map[string]any{
				"orderBillId": "ob-1002", "userUId": "u-lan", "orderDate": 1717300000000.0,
				"status": "PENDING", "totalPrice": 24000.0,
				"items": map[string]any{
					"spinach": map[string]any{"Id": "spinach", "Name": "Water Spinach", "Price": 12000.0, "Quantity": 2, "Image": "drawable/spinach"},
				},
			},
			"ob-1003": map[string]any{
				"orderBillId": "ob-1003", "userUId": "u-minh", "orderDate": 1717100000000.0,
				"status": "CANCELLED", "totalPrice": 60000.0,
				"items": map[string]any{
					"lychee": map[string]any{"Id": "lychee", "Name": "Thieu Lychee", "Price": 60000.0, "Quantity": 1, "Image": "drawable/lychee"},
				},
			},
		},
		"SoldItems": map[string]any{
			"2024-06-01": map[string]any{
				"s1": map[string]any{"Id": "fruits/mango", "quantity": 2},
				"s2": map[string]any{"Id": "vegetables/spinach", "quantity": 5},
			},
		},
		"Reviews": map[string]any{
			"fruits": map[string]any{
				"mango": map[string]any{
					"r1": map[string]any{"userName": "Lan Nguyen", "rating": 5, "comment": "Very sweet", "date": "2024-06-03"},
				},
			},
		},
		"LikedItems": map[string]any{
			"u-minh": map[string]any{
				"lychee": map[string]any{"Id": "lychee", "Name": "Thieu Lychee", "Price": 60000.0, "image": "drawable/lychee", "Type": "fruits"},
			},
		},
	}
}
