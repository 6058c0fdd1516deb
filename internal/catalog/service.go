package catalog

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	UpsertVendor(ctx context.Context, v *Vendor) error
	ListVendors(ctx context.Context) ([]Vendor, error)
	DeleteVendor(ctx context.Context, id int64) error

	CreatePaymentMethod(ctx context.Context, pm *PaymentMethod) error
	GetPaymentMethodByName(ctx context.Context, name string) (*PaymentMethod, error)
	ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id int64) error

	CreateTag(ctx context.Context, t *Tag) error
	ListTags(ctx context.Context) ([]Tag, error)
	DeleteTag(ctx context.Context, id int64) error
}

// Service manages reference data: categories, vendors, payment methods
// and tags. Reference data is global, not per-user.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	c := &Category{Name: name, Description: description}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) CategoryByName(ctx context.Context, name string) (*Category, error) {
	return s.repo.GetCategoryByName(ctx, name)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}

// CreateVendor upserts by name: creating a vendor whose name already
// exists returns the existing vendor's identity instead of failing.
func (s *Service) CreateVendor(ctx context.Context, name, address, phone string) (*Vendor, error) {
	v := &Vendor{Name: name, Address: address, Phone: phone}
	if err := s.repo.UpsertVendor(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}

func (s *Service) ListVendors(ctx context.Context) ([]Vendor, error) {
	return s.repo.ListVendors(ctx)
}

func (s *Service) DeleteVendor(ctx context.Context, id int64) error {
	return s.repo.DeleteVendor(ctx, id)
}

func (s *Service) CreatePaymentMethod(ctx context.Context, name, description string) (*PaymentMethod, error) {
	pm := &PaymentMethod{Name: name, Description: description}
	if err := s.repo.CreatePaymentMethod(ctx, pm); err != nil {
		return nil, err
	}

	return pm, nil
}

func (s *Service) PaymentMethodByName(ctx context.Context, name string) (*PaymentMethod, error) {
	return s.repo.GetPaymentMethodByName(ctx, name)
}

func (s *Service) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return s.repo.ListPaymentMethods(ctx)
}

func (s *Service) DeletePaymentMethod(ctx context.Context, id int64) error {
	return s.repo.DeletePaymentMethod(ctx, id)
}

func (s *Service) CreateTag(ctx context.Context, name string) (*Tag, error) {
	t := &Tag{Name: name}
	if err := s.repo.CreateTag(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	return s.repo.DeleteTag(ctx, id)
}
