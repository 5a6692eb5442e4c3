package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	inverrors "github.com/samir0607/InventoryMgmtSystem/internal/inventory/errors"
)

// foreignKeyViolation is the PostgreSQL error code raised when a product
// insert references a missing category or supplier.
const foreignKeyViolation = "23503"

// PgStore implements Store using PostgreSQL as the data store. Identifiers
// come from database identity columns, which preserves the uniqueness and
// strictly-increasing contract across processes. Referential validation is
// enforced by foreign key constraints rather than a separate read, so there
// is no check-then-act race against concurrent writers.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of Store using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// AddCategory stores a new category and returns the database-assigned id.
func (p *PgStore) AddCategory(ctx context.Context, name string) (int64, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	return id, nil
}

// AddSupplier stores a new supplier and returns the database-assigned id.
func (p *PgStore) AddSupplier(ctx context.Context, name, contact string) (int64, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO suppliers (name, contact) VALUES ($1, $2) RETURNING id`, name, contact,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create supplier: %w", err)
	}
	return id, nil
}

// AddProduct stores a new product and returns the database-assigned id.
// Returns ErrInvalidReference if the category or supplier does not exist.
func (p *PgStore) AddProduct(ctx context.Context, name string, categoryID, supplierID int64, price float64) (int64, error) {
	var id int64
	err := p.db.QueryRow(ctx,
		`INSERT INTO products (name, category_id, supplier_id, price)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		name, categoryID, supplierID, price,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return 0, inverrors.ErrInvalidReference
		}
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

// Categories returns all categories ordered by id.
func (p *PgStore) Categories(ctx context.Context) ([]Category, error) {
	rows, err := p.db.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Suppliers returns all suppliers ordered by id.
func (p *PgStore) Suppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := p.db.Query(ctx, `SELECT id, name, contact FROM suppliers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := make([]Supplier, 0)
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

// Products returns all products ordered by id.
func (p *PgStore) Products(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, name, category_id, supplier_id, price FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		var pr Product
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.CategoryID, &pr.SupplierID, &pr.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
