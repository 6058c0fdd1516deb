// Package export streams a user's receipts as CSV for use in
// spreadsheets or other tooling.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"kuittipankki/internal/receipt"
)

type Service struct {
	receipts *receipt.Service
}

func NewService(receipts *receipt.Service) *Service {
	return &Service{receipts: receipts}
}

var header = []string{"date", "description", "amount", "category", "vendor", "payment_method", "tags"}

// Export writes the user's receipts matching the filter to w, one CSV
// row per receipt, tags joined with "|".
func (s *Service) Export(ctx context.Context, userID int64, filter receipt.ListFilter, w io.Writer) error {
	receipts, err := s.receipts.List(ctx, userID, filter)
	if err != nil {
		return fmt.Errorf("listing receipts: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rc := range receipts {
		tags, err := s.receipts.ListTags(ctx, userID, rc.ID)
		if err != nil {
			return fmt.Errorf("listing tags for receipt %d: %w", rc.ID, err)
		}

		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Name
		}

		record := []string{
			rc.Date.Format(time.DateOnly),
			rc.Description,
			rc.Amount.StringFixed(2),
			rc.CategoryName,
			rc.VendorName,
			rc.PaymentMethodName,
			strings.Join(names, "|"),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing receipt %d: %w", rc.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}
