package events

// OrderCreated is emitted when a createOrder mutation commits an order.
type OrderCreated struct {
	OrderID int
	UserID  int
	Total   float64
	Items   int
}
