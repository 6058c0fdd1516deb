package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	SpendingByCategory(ctx context.Context, userID int64, start, end time.Time) ([]SpendingRow, error)
	SpendingByVendor(ctx context.Context, userID int64, start, end time.Time) ([]SpendingRow, error)
	TotalSpending(ctx context.Context, userID int64) (decimal.Decimal, error)
	MostUsedCategory(ctx context.Context, userID int64) (*CategoryUsage, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SpendingByCategory sums the user's receipts dated within [start, end]
// inclusive, grouped by category name, largest total first. Groups with
// no receipts in the range are omitted.
func (s *Service) SpendingByCategory(ctx context.Context, userID int64, start, end time.Time) ([]SpendingRow, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	return s.repo.SpendingByCategory(ctx, userID, start, end)
}

// SpendingByVendor is SpendingByCategory grouped by vendor name instead.
// Receipts without a vendor do not contribute.
func (s *Service) SpendingByVendor(ctx context.Context, userID int64, start, end time.Time) ([]SpendingRow, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}

	return s.repo.SpendingByVendor(ctx, userID, start, end)
}

// TotalSpending sums every receipt the user owns; a user without
// receipts totals 0.00 rather than erroring.
func (s *Service) TotalSpending(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.repo.TotalSpending(ctx, userID)
}

// MostUsedCategory returns the category with the highest receipt count
// for the user, or nil when the user has no receipts.
func (s *Service) MostUsedCategory(ctx context.Context, userID int64) (*CategoryUsage, error) {
	return s.repo.MostUsedCategory(ctx, userID)
}

func checkRange(start, end time.Time) error {
	if start.After(end) {
		return ErrInvalidRange
	}

	return nil
}
