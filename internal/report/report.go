package report

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange is returned when a reporting range has its start date
// after its end date. Callers get an error, never a silent empty result.
var ErrInvalidRange = errors.New("start date after end date")

// SpendingRow is one aggregated group: a category or vendor name and the
// summed amount of the user's receipts in the range.
type SpendingRow struct {
	Label string
	Total decimal.Decimal
}

// CategoryUsage names the category a user files receipts under most often.
type CategoryUsage struct {
	Name  string
	Count int64
}
