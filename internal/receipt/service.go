package receipt

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"kuittipankki/internal/catalog"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=receipt
type Repository interface {
	// CreateReceipt inserts the receipt together with its items and tag
	// associations in one transaction.
	CreateReceipt(ctx context.Context, rc *Receipt, items []Item, tagIDs []int64) error
	GetReceipt(ctx context.Context, userID, id int64) (*Receipt, error)
	ListReceipts(ctx context.Context, userID int64, filter ListFilter) ([]*Receipt, error)
	UpdateReceipt(ctx context.Context, rc *Receipt) error
	// DeleteReceipt removes the receipt's tag rows, item rows and the
	// receipt itself, in that order, in one transaction.
	DeleteReceipt(ctx context.Context, userID, id int64) error
	SetFilename(ctx context.Context, userID, id int64, filename string) error

	// Tag and item writes verify ownership inside their own transaction;
	// a receipt the user does not own resolves to ErrNotFound.
	AddTags(ctx context.Context, userID, receiptID int64, tagIDs []int64) error
	ReplaceTags(ctx context.Context, userID, receiptID int64, tagIDs []int64) error
	ListTags(ctx context.Context, receiptID int64) ([]catalog.Tag, error)

	ReplaceItems(ctx context.Context, userID, receiptID int64, items []Item) error
	ListItems(ctx context.Context, receiptID int64) ([]Item, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ItemParams struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

type CreateParams struct {
	Description     string
	Amount          decimal.Decimal
	Date            time.Time
	CategoryID      int64
	VendorID        *int64
	PaymentMethodID int64
	Filename        string
	Items           []ItemParams
	TagIDs          []int64
}

type UpdateParams struct {
	Description     string
	Amount          decimal.Decimal
	Date            time.Time
	CategoryID      int64
	VendorID        *int64
	PaymentMethodID int64
}

type ListFilter struct {
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

func (s *Service) Create(ctx context.Context, userID int64, params CreateParams) (*Receipt, error) {
	if params.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	for _, it := range params.Items {
		if it.Price.IsNegative() {
			return nil, ErrNegativeAmount
		}
	}

	rc := &Receipt{
		Filename:        params.Filename,
		Description:     params.Description,
		Amount:          params.Amount,
		Date:            params.Date,
		UserID:          userID,
		CategoryID:      params.CategoryID,
		VendorID:        params.VendorID,
		PaymentMethodID: params.PaymentMethodID,
	}

	if err := s.repo.CreateReceipt(ctx, rc, paramsToItems(params.Items), params.TagIDs); err != nil {
		return nil, err
	}

	return rc, nil
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*Receipt, error) {
	return s.repo.GetReceipt(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID int64, filter ListFilter) ([]*Receipt, error) {
	return s.repo.ListReceipts(ctx, userID, filter)
}

// Update replaces the whole editable row; it is not a patch.
func (s *Service) Update(ctx context.Context, userID, id int64, params UpdateParams) (*Receipt, error) {
	if params.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	rc := &Receipt{
		ID:              id,
		UserID:          userID,
		Description:     params.Description,
		Amount:          params.Amount,
		Date:            params.Date,
		CategoryID:      params.CategoryID,
		VendorID:        params.VendorID,
		PaymentMethodID: params.PaymentMethodID,
	}

	if err := s.repo.UpdateReceipt(ctx, rc); err != nil {
		return nil, err
	}

	return s.repo.GetReceipt(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.DeleteReceipt(ctx, userID, id)
}

// AttachFile records the stored-file reference on the receipt. The bytes
// themselves live with the blob-storage collaborator.
func (s *Service) AttachFile(ctx context.Context, userID, id int64, filename string) error {
	return s.repo.SetFilename(ctx, userID, id, filename)
}

func (s *Service) AddTags(ctx context.Context, userID, receiptID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	return s.repo.AddTags(ctx, userID, receiptID, tagIDs)
}

// ReplaceTags makes the receipt's tag set equal exactly tagIDs. The
// delete and inserts commit atomically, so readers never observe a
// partial set.
func (s *Service) ReplaceTags(ctx context.Context, userID, receiptID int64, tagIDs []int64) error {
	return s.repo.ReplaceTags(ctx, userID, receiptID, tagIDs)
}

func (s *Service) ListTags(ctx context.Context, userID, receiptID int64) ([]catalog.Tag, error) {
	if err := s.checkOwnership(ctx, userID, receiptID); err != nil {
		return nil, err
	}

	return s.repo.ListTags(ctx, receiptID)
}

func (s *Service) ReplaceItems(ctx context.Context, userID, receiptID int64, items []ItemParams) error {
	for _, it := range items {
		if it.Price.IsNegative() {
			return ErrNegativeAmount
		}
	}

	return s.repo.ReplaceItems(ctx, userID, receiptID, paramsToItems(items))
}

func (s *Service) ListItems(ctx context.Context, userID, receiptID int64) ([]Item, error) {
	if err := s.checkOwnership(ctx, userID, receiptID); err != nil {
		return nil, err
	}

	return s.repo.ListItems(ctx, receiptID)
}

// checkOwnership guards the read paths. Writes verify ownership inside
// their own transaction instead, where the check and the mutation are
// atomic.
func (s *Service) checkOwnership(ctx context.Context, userID, receiptID int64) error {
	_, err := s.repo.GetReceipt(ctx, userID, receiptID)
	return err
}

func paramsToItems(params []ItemParams) []Item {
	if len(params) == 0 {
		return nil
	}

	items := make([]Item, len(params))
	for i, p := range params {
		items[i] = Item{
			Name:     p.Name,
			Quantity: p.Quantity,
			Price:    p.Price,
		}
	}

	return items
}
