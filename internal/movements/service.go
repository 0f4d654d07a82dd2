package movements

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
)

type repository interface {
	CreateTx(tx *gorm.DB, movement *models.Movement) error
	AdjustQuantityTx(tx *gorm.DB, componentID, delta int) error
	ComponentExists(ctx context.Context, componentID int) (bool, error)
	List(ctx context.Context, actor string) ([]Entry, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AppendInput carries one ledger entry from the movement form.
type AppendInput struct {
	ComponentID int    `validate:"required,gt=0"`
	Kind        string `validate:"required"`
	Quantity    int    `validate:"required,gt=0"`
	Actor       string `validate:"required"`
	Notes       string
}

// Service exposes the append-only movement ledger.
type Service interface {
	Append(ctx context.Context, input AppendInput) error
	List(ctx context.Context, actor string) ([]Entry, error)
}

type service struct {
	repo     repository
	tx       txRunner
	validate *validator.Validate
}

// NewService wires the movement ledger.
func NewService(repo repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("movements repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		validate: validator.New(),
	}, nil
}

// Append records one movement and adjusts the component's cached quantity
// in the same transaction, so the ledger and the cache never diverge.
func (s *service) Append(ctx context.Context, input AppendInput) error {
	input.Actor = strings.TrimSpace(input.Actor)
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid movement")
	}
	kind, err := enums.ParseMovementKind(input.Kind)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid movement kind")
	}

	exists, err := s.repo.ComponentExists(ctx, input.ComponentID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check component")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
	}

	movement := &models.Movement{
		ComponentID: input.ComponentID,
		Kind:        kind,
		Quantity:    input.Quantity,
		Actor:       input.Actor,
		Notes:       input.Notes,
		OccurredAt:  time.Now().UTC(),
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, movement); err != nil {
			return fmt.Errorf("insert movement: %w", err)
		}
		delta := kind.SignedDelta(movement.Quantity)
		if err := s.repo.AdjustQuantityTx(tx, movement.ComponentID, delta); err != nil {
			return fmt.Errorf("adjust quantity: %w", err)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append movement")
	}
	return nil
}

func (s *service) List(ctx context.Context, actor string) ([]Entry, error) {
	entries, err := s.repo.List(ctx, strings.TrimSpace(actor))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}
	return entries, nil
}
