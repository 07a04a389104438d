package engine

import (
	"fmt"

	"github.com/hanpama/shopgraph/internal/eventbus"
	"github.com/hanpama/shopgraph/internal/events"
	"github.com/hanpama/shopgraph/internal/store"
)

func (s *requestState) resolveProducts() {
	limit, category := productsArgs(s.vars)
	s.data["products"] = s.store.Products(limit, category)
}

func (s *requestState) resolveProduct() {
	id := productIDArg(s.vars, s.rawQuery)
	p, err := s.store.Product(id)
	if err != nil {
		s.addError(fmt.Sprintf("Product with id %d not found", id))
		return
	}
	s.data["product"] = p
}

func (s *requestState) resolveUser() {
	user, err := s.authenticate()
	if err != nil {
		s.addErrorCode(authErrorMessage(err), "UNAUTHENTICATED")
		return
	}
	s.data["user"] = *user
}

// resolveOrders omits data.orders without recording an error when the caller
// is unauthenticated. Inconsistent with every other protected operation, but
// existing callers rely on the absent key.
func (s *requestState) resolveOrders() {
	user, err := s.authenticate()
	if err != nil {
		return
	}
	s.data["orders"] = s.store.OrdersByUser(user.ID)
}

func (s *requestState) resolveCreateOrder() {
	user, err := s.authenticate()
	if err != nil {
		s.addError(authErrorMessage(err))
		return
	}

	inputs := orderItemsArg(s.vars)
	if len(inputs) == 0 {
		s.addError("Order items are required")
		return
	}

	// Validate in input order; the first unknown product aborts the whole
	// order and already-validated items are discarded.
	items := make([]store.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		p, err := s.store.Product(in.ProductID)
		if err != nil {
			s.addError(fmt.Sprintf("Product %d not found", in.ProductID))
			return
		}
		items = append(items, store.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  in.Quantity,
		})
	}

	order := s.store.CreateOrder(user.ID, items)
	eventbus.Publish(s.ctx, events.OrderCreated{
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total,
		Items:   len(order.Items),
	})
	s.data["createOrder"] = map[string]any{
		"order":   order,
		"success": true,
		"message": "Order created successfully",
	}
}

func (s *requestState) resolveUpdateProduct() {
	user, err := s.authenticate()
	if err != nil || user.Role != store.RoleAdmin {
		s.addErrorCode("Admin access required", "FORBIDDEN")
		return
	}

	id, patch := updateProductArgs(s.vars)
	p, err := s.store.UpdateProduct(id, patch)
	if err != nil {
		s.addError(fmt.Sprintf("Product %d not found", id))
		return
	}
	s.data["updateProduct"] = p
}
