package catalog

import "errors"

var (
	// ErrNotFound is returned when a reference-data row does not exist.
	ErrNotFound = errors.New("catalog entry not found")
	// ErrConflict is returned when a unique name is already taken.
	ErrConflict = errors.New("catalog entry already exists")
	// ErrInUse is returned when a delete is blocked by referencing receipts.
	ErrInUse = errors.New("catalog entry still referenced")
)

// Category classifies receipts for reporting.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Vendor is the merchant a receipt came from. Names are unique;
// creation is an idempotent upsert on name.
type Vendor struct {
	ID      int64
	Name    string
	Address string
	Phone   string
}

// PaymentMethod records how a receipt was paid.
type PaymentMethod struct {
	ID          int64
	Name        string
	Description string
}

// Tag is a free-form label, many-to-many with receipts.
type Tag struct {
	ID   int64
	Name string
}
