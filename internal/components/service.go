package components

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
	"github.com/Arthur-020/labstock-backend/pkg/storage/cloudinary"
)

// uploadFolder is the Cloudinary folder new component images land in.
const uploadFolder = "inventario"

type repository interface {
	List(ctx context.Context, search string, categoryID *int) ([]Row, error)
	FindByID(ctx context.Context, id int) (*models.Component, error)
	Create(ctx context.Context, component *models.Component) (*models.Component, error)
	Update(ctx context.Context, component *models.Component, replaceImage bool) error
	DeleteMovementsTx(tx *gorm.DB, componentID int) error
	DeleteComponentTx(tx *gorm.DB, id int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the component registry: listing, registration with image
// upload, edits and cascading deletes.
type Service interface {
	List(ctx context.Context, search string, categoryID *int) ([]Row, error)
	Create(ctx context.Context, input CreateInput) (*models.Component, error)
	GetForEdit(ctx context.Context, id int) (*models.Component, error)
	Update(ctx context.Context, input UpdateInput) error
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo     repository
	tx       txRunner
	uploader cloudinary.Uploader
	log      *logger.Logger
	validate *validator.Validate
}

// NewService wires the component registry. The uploader may be nil when no
// Cloudinary credentials are configured; image handling is then skipped.
func NewService(repo repository, tx txRunner, uploader cloudinary.Uploader, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("components repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		uploader: uploader,
		log:      log,
		validate: validator.New(),
	}, nil
}

func (s *service) List(ctx context.Context, search string, categoryID *int) ([]Row, error) {
	rows, err := s.repo.List(ctx, strings.TrimSpace(search), categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list components")
	}
	return rows, nil
}

// Create uploads the image first so a storage failure aborts the whole
// registration; no component row is written without its asset.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Component, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component")
	}

	var imageURL *string
	if len(input.Image) > 0 && s.uploader != nil {
		url, err := s.uploader.Upload(ctx, input.Image, uploadFolder)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload component image")
		}
		imageURL = &url
	}

	component := &models.Component{
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
		Status:      input.Status,
		ImageURL:    imageURL,
	}
	created, err := s.repo.Create(ctx, component)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create component")
	}
	return created, nil
}

func (s *service) GetForEdit(ctx context.Context, id int) (*models.Component, error) {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load component")
	}
	return component, nil
}

// Update replaces the stored fields and, when a new image was submitted,
// uploads it and points the row at the new URL. The previous remote asset
// is left in place; only a full delete removes assets.
func (s *service) Update(ctx context.Context, input UpdateInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component")
	}

	current, err := s.repo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load component")
	}

	replaceImage := false
	component := &models.Component{
		ID:          current.ID,
		Name:        input.Name,
		Description: input.Description,
		Quantity:    input.Quantity,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
		Status:      input.Status,
	}
	if len(input.Image) > 0 && s.uploader != nil {
		url, err := s.uploader.Upload(ctx, input.Image, uploadFolder)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload component image")
		}
		component.ImageURL = &url
		replaceImage = true
	}

	if err := s.repo.Update(ctx, component, replaceImage); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update component")
	}
	return nil
}

// Delete removes the ledger rows and the component in one transaction, then
// destroys the remote image best-effort. A failed destroy is logged and
// swallowed; the database is already consistent at that point.
func (s *service) Delete(ctx context.Context, id int) error {
	component, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load component")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.DeleteMovementsTx(tx, id); err != nil {
			return fmt.Errorf("delete movements: %w", err)
		}
		if err := s.repo.DeleteComponentTx(tx, id); err != nil {
			return fmt.Errorf("delete component: %w", err)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete component")
	}

	if component.ImageURL != nil && s.uploader != nil {
		publicID := cloudinary.PublicIDFromURL(*component.ImageURL)
		if publicID != "" {
			if err := s.uploader.Destroy(ctx, publicID); err != nil {
				s.log.Warn(s.log.WithField(ctx, "public_id", publicID), "failed to destroy component image")
			}
		}
	}
	return nil
}
