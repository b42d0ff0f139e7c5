package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

const maxMessageLength = 4000

// Input carries the public contact form fields.
type Input struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Service defines contact form operations.
type Service interface {
	Submit(ctx context.Context, input Input) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
}

type service struct {
	repo Repository
}

// NewService builds a contact service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, input Input) (*models.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	body := strings.TrimSpace(input.Message)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}
	if len(body) > maxMessageLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message too long")
	}

	message := &models.ContactMessage{Name: name, Message: body}
	created, err := s.repo.Create(ctx, message)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store contact message")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.ContactMessage, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contact messages")
	}
	return list, nil
}
