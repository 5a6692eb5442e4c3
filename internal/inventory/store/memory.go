package store

import (
	"context"
	"sync"

	inverrors "github.com/samir0607/InventoryMgmtSystem/internal/inventory/errors"
)

// memory implements Store with append-only in-process collections. A single
// mutex guards the three collections and their counters, which keeps id
// assignment linearizable: two concurrent adds never observe the same id.
type memory struct {
	mu             sync.Mutex
	categories     []Category
	suppliers      []Supplier
	products       []Product
	nextCategoryID int64
	nextSupplierID int64
	nextProductID  int64
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		nextCategoryID: 1,
		nextSupplierID: 1,
		nextProductID:  1,
	}
}

// AddCategory stores a new category and returns its assigned id.
func (s *memory) AddCategory(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextCategoryID
	s.nextCategoryID++
	s.categories = append(s.categories, Category{ID: id, Name: name})
	return id, nil
}

// AddSupplier stores a new supplier and returns its assigned id.
func (s *memory) AddSupplier(_ context.Context, name, contact string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSupplierID
	s.nextSupplierID++
	s.suppliers = append(s.suppliers, Supplier{ID: id, Name: name, Contact: contact})
	return id, nil
}

// AddProduct validates the foreign references and stores a new product.
// The existence check and the append happen under the same lock, so a
// product never references an id that was not fully stored.
func (s *memory) AddProduct(_ context.Context, name string, categoryID, supplierID int64, price float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.categoryExists(categoryID) || !s.supplierExists(supplierID) {
		return 0, inverrors.ErrInvalidReference
	}

	id := s.nextProductID
	s.nextProductID++
	s.products = append(s.products, Product{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		SupplierID: supplierID,
		Price:      price,
	})
	return id, nil
}

// Categories returns a snapshot copy of all categories in insertion order.
func (s *memory) Categories(_ context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Category, len(s.categories))
	copy(snapshot, s.categories)
	return snapshot, nil
}

// Suppliers returns a snapshot copy of all suppliers in insertion order.
func (s *memory) Suppliers(_ context.Context) ([]Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Supplier, len(s.suppliers))
	copy(snapshot, s.suppliers)
	return snapshot, nil
}

// Products returns a snapshot copy of all products in insertion order.
func (s *memory) Products(_ context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]Product, len(s.products))
	copy(snapshot, s.products)
	return snapshot, nil
}

func (s *memory) categoryExists(id int64) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *memory) supplierExists(id int64) bool {
	for _, sp := range s.suppliers {
		if sp.ID == id {
			return true
		}
	}
	return false
}
