package domain

// User.OrderBills is an index of order ids; the orders themselves are the
// source of truth.
type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone,omitempty"`
	Address    string   `json:"address,omitempty"`
	OrderBills []string `json:"orderBills"`
}
