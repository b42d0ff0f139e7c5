package policies

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Input carries the admin-editable policy fields.
type Input struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Service defines policy operations.
type Service interface {
	Upsert(ctx context.Context, slug string, input Input) (*models.Policy, error)
	GetBySlug(ctx context.Context, slug string) (*models.Policy, error)
	List(ctx context.Context) ([]models.Policy, error)
}

type service struct {
	repo Repository
}

// NewService builds a policy service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("policy repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Upsert(ctx context.Context, slug string, input Input) (*models.Policy, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid policy slug")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content required")
	}

	policy := &models.Policy{
		Slug:    slug,
		Title:   strings.TrimSpace(input.Title),
		Content: input.Content,
	}
	saved, err := s.repo.Upsert(ctx, policy)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert policy")
	}
	return saved, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Policy, error) {
	policy, err := s.repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "policy not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load policy")
	}
	return policy, nil
}

func (s *service) List(ctx context.Context) ([]models.Policy, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list policies")
	}
	return list, nil
}
