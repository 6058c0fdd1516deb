package store

import (
	"context"
	"database/sql"
	"fmt"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/database"
	"kuittipankki/internal/receipt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectReceiptColumns = `
	r.id, r.filename, r.description, r.amount, r.receipt_date, r.user_id,
	r.category_id, r.vendor_id, r.payment_method_id,
	c.name AS category_name, v.name AS vendor_name, pm.name AS payment_method_name,
	r.created_at, r.updated_at
`

const receiptJoins = `
	FROM receipts r
	JOIN categories c ON r.category_id = c.id
	LEFT JOIN vendors v ON r.vendor_id = v.id
	JOIN payment_methods pm ON r.payment_method_id = pm.id
`

// scanReceipt reads one receipt row in selectReceiptColumns order.
func scanReceipt(s scanner) (*receipt.Receipt, error) {
	var (
		rc                   receipt.Receipt
		filename, vendorName sql.NullString
	)

	if err := s.Scan(
		&rc.ID, &filename, &rc.Description, &rc.Amount, &rc.Date, &rc.UserID,
		&rc.CategoryID, &rc.VendorID, &rc.PaymentMethodID,
		&rc.CategoryName, &vendorName, &rc.PaymentMethodName,
		&rc.CreatedAt, &rc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rc.Filename = filename.String
	rc.VendorName = vendorName.String

	return &rc, nil
}

func (s *Store) CreateReceipt(ctx context.Context, rc *receipt.Receipt, items []receipt.Item, tagIDs []int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO receipts (filename, description, amount, receipt_date, user_id, category_id, vendor_id, payment_method_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		nullString(rc.Filename),
		rc.Description,
		rc.Amount,
		rc.Date,
		rc.UserID,
		rc.CategoryID,
		rc.VendorID,
		rc.PaymentMethodID,
	).Scan(&rc.ID, &rc.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating receipt: %w", classify(err))
	}

	if err := insertItems(ctx, dbTx, rc.ID, items); err != nil {
		return err
	}

	if err := insertTags(ctx, dbTx, rc.ID, tagIDs); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing receipt: %w", err)
	}

	return nil
}

func (s *Store) GetReceipt(ctx context.Context, userID, id int64) (*receipt.Receipt, error) {
	query := `SELECT ` + selectReceiptColumns + receiptJoins + `
		WHERE r.id = $1 AND r.user_id = $2`

	rc, err := scanReceipt(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, receipt.ErrNotFound
		}

		return nil, fmt.Errorf("getting receipt: %w", err)
	}

	return rc, nil
}

func (s *Store) ListReceipts(ctx context.Context, userID int64, filter receipt.ListFilter) ([]*receipt.Receipt, error) {
	query := `SELECT ` + selectReceiptColumns + receiptJoins + `
		WHERE r.user_id = $1`

	args := []any{userID}
	argIdx := 2

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND r.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND r.receipt_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND r.receipt_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY r.receipt_date DESC, r.id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*receipt.Receipt

	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning receipt: %w", err)
		}

		receipts = append(receipts, rc)
	}

	return receipts, rows.Err()
}

func (s *Store) UpdateReceipt(ctx context.Context, rc *receipt.Receipt) error {
	query := `
		UPDATE receipts
		SET description = $1, amount = $2, receipt_date = $3, category_id = $4,
			vendor_id = $5, payment_method_id = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		rc.Description,
		rc.Amount,
		rc.Date,
		rc.CategoryID,
		rc.VendorID,
		rc.PaymentMethodID,
		rc.ID,
		rc.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating receipt: %w", classify(err))
	}

	return checkAffected(res)
}

// DeleteReceipt removes dependent tag and item rows before the receipt
// itself; the whole cascade commits or rolls back as one.
func (s *Store) DeleteReceipt(ctx context.Context, userID, id int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM receipt_tags WHERE receipt_id = $1`, id); err != nil {
		return fmt.Errorf("deleting receipt tags: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM receipt_items WHERE receipt_id = $1`, id); err != nil {
		return fmt.Errorf("deleting receipt items: %w", err)
	}

	res, err := dbTx.ExecContext(ctx,
		`DELETE FROM receipts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	if err := checkAffected(res); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	return nil
}

func (s *Store) SetFilename(ctx context.Context, userID, id int64, filename string) error {
	query := `
		UPDATE receipts
		SET filename = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`

	res, err := s.db.ExecContext(ctx, query, nullString(filename), id, userID)
	if err != nil {
		return fmt.Errorf("setting filename: %w", err)
	}

	return checkAffected(res)
}

func (s *Store) AddTags(ctx context.Context, userID, receiptID int64, tagIDs []int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := lockReceipt(ctx, dbTx, userID, receiptID); err != nil {
		return err
	}

	if err := insertTags(ctx, dbTx, receiptID, tagIDs); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing tags: %w", err)
	}

	return nil
}

// ReplaceTags is a transactional delete-then-insert: the receipt's tag
// set equals exactly tagIDs once committed.
func (s *Store) ReplaceTags(ctx context.Context, userID, receiptID int64, tagIDs []int64) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := lockReceipt(ctx, dbTx, userID, receiptID); err != nil {
		return err
	}

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM receipt_tags WHERE receipt_id = $1`, receiptID); err != nil {
		return fmt.Errorf("clearing receipt tags: %w", err)
	}

	if err := insertTags(ctx, dbTx, receiptID, tagIDs); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing tags: %w", err)
	}

	return nil
}

func (s *Store) ListTags(ctx context.Context, receiptID int64) ([]catalog.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN receipt_tags rt ON t.id = rt.tag_id
		WHERE rt.receipt_id = $1
		ORDER BY t.name
	`

	rows, err := s.db.QueryContext(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("listing receipt tags: %w", err)
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

func (s *Store) ReplaceItems(ctx context.Context, userID, receiptID int64, items []receipt.Item) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if err := lockReceipt(ctx, dbTx, userID, receiptID); err != nil {
		return err
	}

	if _, err := dbTx.ExecContext(ctx,
		`DELETE FROM receipt_items WHERE receipt_id = $1`, receiptID); err != nil {
		return fmt.Errorf("clearing receipt items: %w", err)
	}

	if err := insertItems(ctx, dbTx, receiptID, items); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing items: %w", err)
	}

	return nil
}

func (s *Store) ListItems(ctx context.Context, receiptID int64) ([]receipt.Item, error) {
	query := `
		SELECT id, receipt_id, item_name, quantity, price
		FROM receipt_items
		WHERE receipt_id = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("listing receipt items: %w", err)
	}
	defer rows.Close()

	var items []receipt.Item

	for rows.Next() {
		var it receipt.Item
		if err := rows.Scan(&it.ID, &it.ReceiptID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, it)
	}

	return items, rows.Err()
}

// lockReceipt confirms the receipt belongs to the user and holds a row
// lock until the surrounding transaction ends, so a concurrent delete
// cannot slip between the check and the dependent writes.
func lockReceipt(ctx context.Context, dbTx *sql.Tx, userID, receiptID int64) error {
	var id int64

	err := dbTx.QueryRowContext(ctx,
		`SELECT id FROM receipts WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		receiptID, userID,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return receipt.ErrNotFound
		}

		return fmt.Errorf("locking receipt: %w", err)
	}

	return nil
}

func insertTags(ctx context.Context, dbTx *sql.Tx, receiptID int64, tagIDs []int64) error {
	query := `INSERT INTO receipt_tags (receipt_id, tag_id) VALUES ($1, $2)`

	for _, tagID := range tagIDs {
		if _, err := dbTx.ExecContext(ctx, query, receiptID, tagID); err != nil {
			return fmt.Errorf("tagging receipt: %w", classify(err))
		}
	}

	return nil
}

func insertItems(ctx context.Context, dbTx *sql.Tx, receiptID int64, items []receipt.Item) error {
	query := `
		INSERT INTO receipt_items (receipt_id, item_name, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	for i := range items {
		items[i].ReceiptID = receiptID

		err := dbTx.QueryRowContext(ctx, query,
			receiptID,
			items[i].Name,
			items[i].Quantity,
			items[i].Price,
		).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("creating receipt item: %w", err)
		}
	}

	return nil
}

func checkAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if affected == 0 {
		return receipt.ErrNotFound
	}

	return nil
}

// classify maps foreign-key violations to the typed sentinel so callers
// never have to inspect storage-engine error codes.
func classify(err error) error {
	if database.IsForeignKeyViolation(err) {
		return receipt.ErrInvalidReference
	}

	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
