package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

// Service defines the catalog operations used by controllers and checkout.
type Service interface {
	ListProducts(ctx context.Context, category string, includeInactive bool) ([]ProductView, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	CreateProduct(ctx context.Context, input ProductInput) (*ProductView, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductView, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context) ([]CategoryView, error)
	CreateCategory(ctx context.Context, name string, imageURL *string) (*CategoryView, error)
	RenameCategory(ctx context.Context, id uuid.UUID, name string) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	Title              string
	Description        string
	Price              decimal.Decimal
	DiscountPercentage *decimal.Decimal
	Category           string
	ImageURLs          []string
	IsActive           bool
}

type service struct {
	repo Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, category string, includeInactive bool) ([]ProductView, error) {
	products, err := s.repo.ListProducts(ctx, ProductFilter{
		Category:   strings.TrimSpace(category),
		OnlyActive: !includeInactive,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	view := toProductView(*product)
	return &view, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*ProductView, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product := &models.Product{
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Price:              input.Price,
		DiscountPercentage: input.DiscountPercentage,
		Category:           strings.TrimSpace(input.Category),
		ImageURLs:          input.ImageURLs,
		IsActive:           input.IsActive,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	view := toProductView(*created)
	return &view, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.Price = input.Price
	product.DiscountPercentage = input.DiscountPercentage
	product.Category = strings.TrimSpace(input.Category)
	product.ImageURLs = input.ImageURLs
	product.IsActive = input.IsActive

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	view := toProductView(*product)
	return &view, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, toCategoryView(c))
	}
	return views, nil
}

func (s *service) CreateCategory(ctx context.Context, name string, imageURL *string) (*CategoryView, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	created, err := s.repo.CreateCategory(ctx, &models.Category{Name: name, ImageURL: imageURL})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	view := toCategoryView(*created)
	return &view, nil
}

func (s *service) RenameCategory(ctx context.Context, id uuid.UUID, name string) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}
	if err := s.repo.RenameCategory(ctx, id, name); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename category")
	}
	return nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product title required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product category required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	if input.DiscountPercentage != nil {
		d := *input.DiscountPercentage
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
		}
	}
	return nil
}
