// Package store provides the inventory entity store and its implementations.
package store

import "context"

// Category is an immutable product category.
type Category struct {
	ID   int64
	Name string
}

// Supplier is an immutable supplier record.
type Supplier struct {
	ID      int64
	Name    string
	Contact string
}

// Product references a category and a supplier by id.
type Product struct {
	ID         int64
	Name       string
	CategoryID int64
	SupplierID int64
	Price      float64
}

// Store is the source of truth for all inventory entities. It is the only
// component permitted to mutate the entity collections or the identifier
// counters. Identifiers within one entity type start at 1, are strictly
// increasing and are never reused, even across failed calls.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type Store interface {
	// AddCategory stores a new category and returns its assigned id.
	AddCategory(ctx context.Context, name string) (int64, error)

	// AddSupplier stores a new supplier and returns its assigned id.
	AddSupplier(ctx context.Context, name, contact string) (int64, error)

	// AddProduct stores a new product and returns its assigned id.
	// Returns ErrInvalidReference if categoryID or supplierID does not match
	// an existing entity at the instant of the call; nothing is stored and
	// no id is consumed from the caller's point of view.
	AddProduct(ctx context.Context, name string, categoryID, supplierID int64, price float64) (int64, error)

	// Categories returns a point-in-time snapshot of all categories in
	// insertion order.
	Categories(ctx context.Context) ([]Category, error)

	// Suppliers returns a point-in-time snapshot of all suppliers in
	// insertion order.
	Suppliers(ctx context.Context) ([]Supplier, error)

	// Products returns a point-in-time snapshot of all products in
	// insertion order.
	Products(ctx context.Context) ([]Product, error)
}
