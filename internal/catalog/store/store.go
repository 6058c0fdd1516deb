package store

import (
	"context"
	"database/sql"
	"fmt"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, c.Name, c.Description).Scan(&c.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return catalog.ErrConflict
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	query := `SELECT id, name, description FROM categories WHERE name = $1`

	var c catalog.Category

	err := s.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	query := `SELECT id, name, description FROM categories ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category

	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "categories", id)
}

// UpsertVendor inserts the vendor or, when the name is taken, resolves to
// the existing row. The DO UPDATE arm makes RETURNING yield the existing
// row, which DO NOTHING would not.
func (s *Store) UpsertVendor(ctx context.Context, v *catalog.Vendor) error {
	query := `
		INSERT INTO vendors (name, address, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, address, phone
	`

	var address, phone sql.NullString

	err := s.db.QueryRowContext(ctx, query,
		v.Name,
		nullString(v.Address),
		nullString(v.Phone),
	).Scan(&v.ID, &address, &phone)
	if err != nil {
		return fmt.Errorf("upserting vendor: %w", err)
	}

	// On a name collision the stored contact details win over whatever
	// the caller sent.
	v.Address = address.String
	v.Phone = phone.String

	return nil
}

func (s *Store) ListVendors(ctx context.Context) ([]catalog.Vendor, error) {
	query := `SELECT id, name, address, phone FROM vendors ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	var vendors []catalog.Vendor

	for rows.Next() {
		var (
			v              catalog.Vendor
			address, phone sql.NullString
		)

		if err := rows.Scan(&v.ID, &v.Name, &address, &phone); err != nil {
			return nil, fmt.Errorf("scanning vendor: %w", err)
		}

		v.Address = address.String
		v.Phone = phone.String

		vendors = append(vendors, v)
	}

	return vendors, rows.Err()
}

func (s *Store) DeleteVendor(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "vendors", id)
}

func (s *Store) CreatePaymentMethod(ctx context.Context, pm *catalog.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (name, description)
		VALUES ($1, $2)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, pm.Name, pm.Description).Scan(&pm.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return catalog.ErrConflict
		}

		return fmt.Errorf("creating payment method: %w", err)
	}

	return nil
}

func (s *Store) GetPaymentMethodByName(ctx context.Context, name string) (*catalog.PaymentMethod, error) {
	query := `SELECT id, name, description FROM payment_methods WHERE name = $1`

	var pm catalog.PaymentMethod

	err := s.db.QueryRowContext(ctx, query, name).Scan(&pm.ID, &pm.Name, &pm.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment method: %w", err)
	}

	return &pm, nil
}

func (s *Store) ListPaymentMethods(ctx context.Context) ([]catalog.PaymentMethod, error) {
	query := `SELECT id, name, description FROM payment_methods ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	var methods []catalog.PaymentMethod

	for rows.Next() {
		var pm catalog.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Name, &pm.Description); err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}

		methods = append(methods, pm)
	}

	return methods, rows.Err()
}

func (s *Store) DeletePaymentMethod(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "payment_methods", id)
}

func (s *Store) CreateTag(ctx context.Context, t *catalog.Tag) error {
	query := `
		INSERT INTO tags (name)
		VALUES ($1)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, t.Name).Scan(&t.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return catalog.ErrConflict
		}

		return fmt.Errorf("creating tag: %w", err)
	}

	return nil
}

func (s *Store) ListTags(ctx context.Context) ([]catalog.Tag, error) {
	query := `SELECT id, name FROM tags ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []catalog.Tag

	for rows.Next() {
		var t catalog.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}

		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	return s.deleteRow(ctx, "tags", id)
}

// deleteRow removes one reference-data row. Reference data does not
// cascade: a foreign-key violation means receipts still point here.
func (s *Store) deleteRow(ctx context.Context, table string, id int64) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return catalog.ErrInUse
		}

		return fmt.Errorf("deleting from %s: %w", table, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}

	if affected == 0 {
		return catalog.ErrNotFound
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
