package csvimport

import (
	"context"
	"errors"
	"fmt"
	"io"

	"kuittipankki/internal/catalog"
	"kuittipankki/internal/receipt"
)

// Service resolves parsed rows against the catalog and creates receipts
// for the importing user.
type Service struct {
	receipts *receipt.Service
	catalog  *catalog.Service
}

func NewService(receipts *receipt.Service, cat *catalog.Service) *Service {
	return &Service{receipts: receipts, catalog: cat}
}

type Result struct {
	Created []*receipt.Receipt
	Skipped []RowError
}

// Import parses the CSV and creates one receipt per valid row. Rows
// whose category or payment method does not exist are skipped and
// reported; they are not created implicitly. Unknown vendors are
// created through the idempotent upsert.
func (s *Service) Import(ctx context.Context, userID int64, r io.Reader) (*Result, error) {
	rows, rowErrs, err := Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{Skipped: rowErrs}

	for _, row := range rows {
		rc, err := s.importRow(ctx, userID, row)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: row.Line, Err: err})
			continue
		}

		result.Created = append(result.Created, rc)
	}

	return result, nil
}

func (s *Service) importRow(ctx context.Context, userID int64, row Row) (*receipt.Receipt, error) {
	cat, err := s.catalog.CategoryByName(ctx, row.Category)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("unknown category %q", row.Category)
		}

		return nil, err
	}

	pm, err := s.catalog.PaymentMethodByName(ctx, row.PaymentMethod)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, fmt.Errorf("unknown payment method %q", row.PaymentMethod)
		}

		return nil, err
	}

	var vendorID *int64

	if row.Vendor != "" {
		vendor, err := s.catalog.CreateVendor(ctx, row.Vendor, "", "")
		if err != nil {
			return nil, err
		}

		vendorID = &vendor.ID
	}

	return s.receipts.Create(ctx, userID, receipt.CreateParams{
		Description:     row.Description,
		Amount:          row.Amount,
		Date:            row.Date,
		CategoryID:      cat.ID,
		VendorID:        vendorID,
		PaymentMethodID: pm.ID,
	})
}
