package banners

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

// Input carries the admin-editable banner fields.
type Input struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "image url required")
	}
	return nil
}

// Service defines banner operations.
type Service interface {
	Create(ctx context.Context, input Input) (*models.Banner, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Banner, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]models.Banner, error)
}

type service struct {
	repo Repository
}

// NewService builds a banner service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banner repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Banner, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	banner := &models.Banner{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}
	created, err := s.repo.Create(ctx, banner)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create banner")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Banner, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load banner")
	}
	banner.Title = strings.TrimSpace(input.Title)
	banner.Description = strings.TrimSpace(input.Description)
	banner.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update banner")
	}
	return banner, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete banner")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]models.Banner, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	return list, nil
}
