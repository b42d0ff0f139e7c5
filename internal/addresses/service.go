package addresses

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trovekart/storefront-backend/pkg/db/models"
	pkgerrors "github.com/trovekart/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Input carries the editable address fields.
type Input struct {
	Name      string
	Phone     string
	Pincode   string
	State     string
	City      string
	Landmark  *string
	Address   string
	IsDefault bool
}

// Service defines the address book operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input Input) (*models.Address, error)
	Update(ctx context.Context, userID, id uuid.UUID, input Input) (*models.Address, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Address, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	// ResolveForCheckout applies the selection rule: the chosen address when
	// provided, else the default, else the first created.
	ResolveForCheckout(ctx context.Context, userID uuid.UUID, chosen *uuid.UUID) (*models.Address, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an address service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, input Input) (*models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	address := &models.Address{
		UserID:    userID,
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Pincode:   strings.TrimSpace(input.Pincode),
		State:     strings.TrimSpace(input.State),
		City:      strings.TrimSpace(input.City),
		Landmark:  input.Landmark,
		Address:   strings.TrimSpace(input.Address),
		IsDefault: input.IsDefault,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		count, err := repo.CountForUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count addresses")
		}
		// The first saved address always becomes the default.
		if count == 0 {
			address.IsDefault = true
		} else if address.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default address")
			}
		}
		if _, err := repo.Create(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (s *service) Update(ctx context.Context, userID, id uuid.UUID, input Input) (*models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var updated *models.Address
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		address, err := repo.FindByID(ctx, userID, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
		}

		if input.IsDefault && !address.IsDefault {
			if err := repo.ClearDefault(ctx, userID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear default address")
			}
		}

		address.Name = strings.TrimSpace(input.Name)
		address.Phone = strings.TrimSpace(input.Phone)
		address.Pincode = strings.TrimSpace(input.Pincode)
		address.State = strings.TrimSpace(input.State)
		address.City = strings.TrimSpace(input.City)
		address.Landmark = input.Landmark
		address.Address = strings.TrimSpace(input.Address)
		address.IsDefault = input.IsDefault

		if err := repo.Update(ctx, address); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update address")
		}
		updated = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "address id required")
	}
	// Orders hold full copies, so deletion is unconstrained.
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}

func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	address, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	return address, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	list, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return list, nil
}

func (s *service) ResolveForCheckout(ctx context.Context, userID uuid.UUID, chosen *uuid.UUID) (*models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if chosen != nil && *chosen != uuid.Nil {
		return s.Get(ctx, userID, *chosen)
	}

	list, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	if len(list) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no delivery address on file")
	}
	for i := range list {
		if list[i].IsDefault {
			return &list[i], nil
		}
	}
	return &list[0], nil
}

func validateInput(input Input) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "name required")
	case strings.TrimSpace(input.Phone) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "phone required")
	case strings.TrimSpace(input.Pincode) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "pincode required")
	case strings.TrimSpace(input.State) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "state required")
	case strings.TrimSpace(input.City) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "city required")
	case strings.TrimSpace(input.Address) == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "address required")
	}
	return nil
}
