package store

// Seed builds a store preloaded with the demo catalog and user accounts.
func Seed() *Store {
	s := New()

	products := []Product{
		{ID: 1, Name: "Laptop Pro 15", Price: 1299.99, Category: "electronics", InStock: true},
		{ID: 2, Name: "Wireless Mouse", Price: 29.99, Category: "electronics", InStock: true},
		{ID: 3, Name: "Mechanical Keyboard", Price: 89.99, Category: "electronics", InStock: false},
		{ID: 4, Name: "Office Chair", Price: 199.99, Category: "furniture", InStock: true},
		{ID: 5, Name: "Standing Desk", Price: 449.99, Category: "furniture", InStock: true},
		{ID: 6, Name: "Desk Lamp", Price: 24.99, Category: "furniture", InStock: true},
		{ID: 7, Name: "USB-C Hub", Price: 49.99, Category: "accessories", InStock: true},
		{ID: 8, Name: "Laptop Sleeve", Price: 19.99, Category: "accessories", InStock: false},
	}
	for _, p := range products {
		s.AddProduct(p)
	}

	users := []User{
		{ID: 1, Email: "admin@example.com", Name: "Admin User", Role: RoleAdmin},
		{ID: 2, Email: "alice@example.com", Name: "Alice Johnson", Role: RoleUser},
		{ID: 3, Email: "bob@example.com", Name: "Bob Smith", Role: RoleUser},
	}
	for _, u := range users {
		s.AddUser(u)
	}

	return s
}
