// Package store holds the in-memory product, order and user collections the
// engine resolves against. A Store is owned by the host process and passed by
// reference into every engine instance, so tests can run isolated stores
// side by side.
package store

import (
	"errors"
	"math"
	"sync"
	"time"
)

// Product is a catalog entry. IDs are unique and products are never deleted.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	InStock  bool    `json:"inStock"`
}

// ProductPatch carries the optional fields of an updateProduct input.
// Nil means "leave as is".
type ProductPatch struct {
	Name    *string
	Price   *float64
	InStock *bool
}

// OrderItem is a line of an order with name and price snapshotted at
// order-creation time. Later product edits never change historical orders.
type OrderItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is immutable once created.
type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"userId"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// User is static seed data, read-only to the engine. Credentials live in the
// auth package, not here.
type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ErrProductNotFound indicates an unknown product id.
var ErrProductNotFound = errors.New("product not found")

// Store is a process-wide mutable set of collections. All mutation goes
// through the single mutex so order-id allocation and order append stay
// atomic across concurrent requests.
type Store struct {
	mu          sync.RWMutex
	products    []*Product
	orders      []*Order
	users       []*User
	nextOrderID int
}

// New creates an empty store. Order ids start at 1.
func New() *Store {
	return &Store{nextOrderID: 1}
}

// AddProduct appends p to the catalog.
func (s *Store) AddProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.products = append(s.products, &cp)
}

// AddUser appends u to the user collection.
func (s *Store) AddUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := u
	s.users = append(s.users, &cp)
}

// Products returns up to limit products, optionally filtered by category.
// category == "" means no filter. Values are copies.
func (s *Store) Products(limit int, category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, max(limit, 0))
	for _, p := range s.products {
		if len(out) >= limit {
			break
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// Product returns the product with the given id.
func (s *Store) Product(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.findProduct(id)
	if p == nil {
		return Product{}, ErrProductNotFound
	}
	return *p, nil
}

// UpdateProduct overwrites only the fields present in patch and returns the
// mutated product.
func (s *Store) UpdateProduct(id int, patch ProductPatch) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProduct(id)
	if p == nil {
		return Product{}, ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	return *p, nil
}

// findProduct must be called with the mutex held.
func (s *Store) findProduct(id int) *Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return *u, true
		}
	}
	return User{}, false
}

// UserByEmail returns the user with the given email.
func (s *Store) UserByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return *u, true
		}
	}
	return User{}, false
}

// Users returns a copy of the user collection.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	for i, u := range s.users {
		out[i] = *u
	}
	return out
}

// OrdersByUser returns the orders placed by the given user, in creation order.
func (s *Store) OrdersByUser(userID int) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0)
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out
}

// CreateOrder allocates the next order id, computes the rounded total and
// appends the order, all under one critical section so ids are never reused.
func (s *Store) CreateOrder(userID int, items []OrderItem) Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	o := &Order{
		ID:        s.nextOrderID,
		UserID:    userID,
		Items:     items,
		Total:     Round2(total),
		Status:    "pending",
		CreatedAt: time.Now(),
	}
	s.nextOrderID++
	s.orders = append(s.orders, o)
	return *o
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
