package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
)

type repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	CreateLocation(ctx context.Context, name string) (*models.Location, error)
	DeleteCategory(ctx context.Context, id int) error
	DeleteLocation(ctx context.Context, id int) error
	FilteredComponents(ctx context.Context, categoryID, locationID *int) ([]FilteredComponent, error)
}

// BrowseResult bundles everything the catalog view renders.
type BrowseResult struct {
	Categories []models.Category
	Locations  []models.Location
	Components []FilteredComponent
}

// Service exposes category/location management and the filtered browse view.
type Service interface {
	Browse(ctx context.Context, categoryID, locationID *int) (*BrowseResult, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Locations(ctx context.Context) ([]models.Location, error)
	CreateCategory(ctx context.Context, name string) error
	CreateLocation(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, id int) error
	DeleteLocation(ctx context.Context, id int) error
}

type service struct {
	repo repository
}

// NewService constructs a catalog service backed by the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Browse(ctx context.Context, categoryID, locationID *int) (*BrowseResult, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	components, err := s.repo.FilteredComponents(ctx, categoryID, locationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list filtered components")
	}
	return &BrowseResult{
		Categories: categories,
		Locations:  locations,
		Components: components,
	}, nil
}

func (s *service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) Locations(ctx context.Context) ([]models.Location, error) {
	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list locations")
	}
	return locations, nil
}

func (s *service) CreateCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	if _, err := s.repo.CreateCategory(ctx, name); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return nil
}

func (s *service) CreateLocation(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "location name is required")
	}
	if _, err := s.repo.CreateLocation(ctx, name); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}
	return nil
}

func (s *service) DeleteCategory(ctx context.Context, id int) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) DeleteLocation(ctx context.Context, id int) error {
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete location")
	}
	return nil
}
