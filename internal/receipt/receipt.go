package receipt

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a receipt id does not resolve for the
	// calling user. A receipt owned by someone else is reported the same
	// way, so existence never leaks across accounts.
	ErrNotFound = errors.New("receipt not found")

	// ErrNegativeAmount is returned when an amount below zero reaches
	// the service.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrInvalidReference is returned when a receipt names a category,
	// vendor, payment method or tag that does not exist.
	ErrInvalidReference = errors.New("referenced entity does not exist")
)

// Receipt is a user-owned record of a single purchase.
type Receipt struct {
	ID          int64
	Filename    string // stored-file reference, empty when nothing is attached
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	UserID      int64

	CategoryID      int64
	VendorID        *int64
	PaymentMethodID int64

	// Names loaded via JOIN for display.
	CategoryName      string
	VendorName        string
	PaymentMethodName string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Item is one line of a receipt's optional line-item breakdown.
type Item struct {
	ID        int64
	ReceiptID int64
	Name      string
	Quantity  int
	Price     decimal.Decimal
}
