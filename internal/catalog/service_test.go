package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
)

type stubCatalogRepo struct {
	categories      []models.Category
	locations       []models.Location
	components      []FilteredComponent
	createdCategory string
	createdLocation string
	failList        bool
}

func (s *stubCatalogRepo) ListCategories(context.Context) ([]models.Category, error) {
	if s.failList {
		return nil, errors.New("boom")
	}
	return s.categories, nil
}

func (s *stubCatalogRepo) ListLocations(context.Context) ([]models.Location, error) {
	return s.locations, nil
}

func (s *stubCatalogRepo) CreateCategory(_ context.Context, name string) (*models.Category, error) {
	s.createdCategory = name
	return &models.Category{ID: 1, Name: name}, nil
}

func (s *stubCatalogRepo) CreateLocation(_ context.Context, name string) (*models.Location, error) {
	s.createdLocation = name
	return &models.Location{ID: 1, Name: name}, nil
}

func (s *stubCatalogRepo) DeleteCategory(context.Context, int) error { return nil }
func (s *stubCatalogRepo) DeleteLocation(context.Context, int) error { return nil }

func (s *stubCatalogRepo) FilteredComponents(context.Context, *int, *int) ([]FilteredComponent, error) {
	return s.components, nil
}

func TestServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}

func TestServiceCreateCategoryTrimsName(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)

	require.NoError(t, svc.CreateCategory(context.Background(), "  Sensores  "))
	assert.Equal(t, "Sensores", repo.createdCategory)
}

func TestServiceCreateRejectsEmptyNames(t *testing.T) {
	svc, err := NewService(&stubCatalogRepo{})
	require.NoError(t, err)

	err = svc.CreateCategory(context.Background(), "   ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	err = svc.CreateLocation(context.Background(), "")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceBrowseBundlesResults(t *testing.T) {
	repo := &stubCatalogRepo{
		categories: []models.Category{{ID: 1, Name: "Sensores"}},
		locations:  []models.Location{{ID: 2, Name: "Estante A"}},
		components: []FilteredComponent{{ID: 3, Name: "Servo"}},
	}
	svc, err := NewService(repo)
	require.NoError(t, err)

	result, err := svc.Browse(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, result.Categories, 1)
	assert.Len(t, result.Locations, 1)
	assert.Len(t, result.Components, 1)
}

func TestServiceBrowseWrapsRepoFailure(t *testing.T) {
	svc, err := NewService(&stubCatalogRepo{failList: true})
	require.NoError(t, err)

	_, err = svc.Browse(context.Background(), nil, nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}
