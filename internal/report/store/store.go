package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"kuittipankki/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ties on total break by name ascending so repeated runs return the
// same order.
const spendingByCategoryQuery = `
	SELECT c.name, SUM(r.amount) AS total
	FROM receipts r
	JOIN categories c ON r.category_id = c.id
	WHERE r.user_id = $1 AND r.receipt_date BETWEEN $2 AND $3
	GROUP BY c.name
	ORDER BY total DESC, c.name ASC
`

const spendingByVendorQuery = `
	SELECT v.name, SUM(r.amount) AS total
	FROM receipts r
	JOIN vendors v ON r.vendor_id = v.id
	WHERE r.user_id = $1 AND r.receipt_date BETWEEN $2 AND $3
	GROUP BY v.name
	ORDER BY total DESC, v.name ASC
`

func (s *Store) SpendingByCategory(ctx context.Context, userID int64, start, end time.Time) ([]report.SpendingRow, error) {
	return s.spending(ctx, spendingByCategoryQuery, userID, start, end)
}

func (s *Store) SpendingByVendor(ctx context.Context, userID int64, start, end time.Time) ([]report.SpendingRow, error) {
	return s.spending(ctx, spendingByVendorQuery, userID, start, end)
}

func (s *Store) spending(ctx context.Context, query string, userID int64, start, end time.Time) ([]report.SpendingRow, error) {
	rows, err := s.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying spending: %w", err)
	}
	defer rows.Close()

	var result []report.SpendingRow

	for rows.Next() {
		var row report.SpendingRow
		if err := rows.Scan(&row.Label, &row.Total); err != nil {
			return nil, fmt.Errorf("scanning spending row: %w", err)
		}

		result = append(result, row)
	}

	return result, rows.Err()
}

func (s *Store) TotalSpending(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM receipts
		WHERE user_id = $1
	`

	var total decimal.Decimal

	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("querying total spending: %w", err)
	}

	return total, nil
}

func (s *Store) MostUsedCategory(ctx context.Context, userID int64) (*report.CategoryUsage, error) {
	// Ties break by earliest category id (first created).
	query := `
		SELECT c.name, COUNT(*) AS usage_count
		FROM receipts r
		JOIN categories c ON r.category_id = c.id
		WHERE r.user_id = $1
		GROUP BY c.id, c.name
		ORDER BY usage_count DESC, c.id ASC
		LIMIT 1
	`

	var usage report.CategoryUsage

	err := s.db.QueryRowContext(ctx, query, userID).Scan(&usage.Name, &usage.Count)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("querying most used category: %w", err)
	}

	return &usage, nil
}
