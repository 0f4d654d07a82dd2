package catalog

import (
	"context"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"gorm.io/gorm"
)

// FilteredComponent is the read model for the catalog browse view: a
// component joined with its category and location names.
type FilteredComponent struct {
	ID           int     `gorm:"column:id"`
	Name         string  `gorm:"column:name"`
	Description  string  `gorm:"column:description"`
	Quantity     int     `gorm:"column:quantity"`
	CategoryName *string `gorm:"column:category_name"`
	LocationName *string `gorm:"column:location_name"`
}

// Repository handles category and location persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategories returns every category ordered by name.
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListLocations returns every location ordered by name.
func (r *Repository) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.WithContext(ctx).Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// CreateCategory inserts a category row. Names are not unique on purpose;
// the original data set contains duplicates.
func (r *Repository) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateLocation inserts a location row.
func (r *Repository) CreateLocation(ctx context.Context, name string) (*models.Location, error) {
	location := &models.Location{Name: name}
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

// DeleteCategory removes a category by ID. A category still referenced by
// components fails on the foreign key; the error propagates untouched.
func (r *Repository) DeleteCategory(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

// DeleteLocation removes a location by ID.
func (r *Repository) DeleteLocation(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{}).Error
}

// FilteredComponents lists components joined with catalog names, with two
// independently optional equality filters. The filters compose as GORM
// clauses instead of concatenated SQL fragments.
func (r *Repository) FilteredComponents(ctx context.Context, categoryID, locationID *int) ([]FilteredComponent, error) {
	query := r.db.WithContext(ctx).
		Table("components AS c").
		Select("c.id, c.name, c.description, c.quantity, cat.name AS category_name, loc.name AS location_name").
		Joins("LEFT JOIN categories cat ON c.category_id = cat.id").
		Joins("LEFT JOIN locations loc ON c.location_id = loc.id").
		Order("c.name")

	if categoryID != nil {
		query = query.Where("c.category_id = ?", *categoryID)
	}
	if locationID != nil {
		query = query.Where("c.location_id = ?", *locationID)
	}

	var rows []FilteredComponent
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
