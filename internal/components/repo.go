package components

import (
	"context"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Row is the inventory listing read model: a component joined with its
// category and location names for display.
type Row struct {
	ID           int     `gorm:"column:id"`
	Name         string  `gorm:"column:name"`
	Description  string  `gorm:"column:description"`
	Quantity     int     `gorm:"column:quantity"`
	Status       string  `gorm:"column:status"`
	ImageURL     *string `gorm:"column:image_url"`
	CategoryName *string `gorm:"column:category_name"`
	LocationName *string `gorm:"column:location_name"`
}

// Repository handles component persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to component operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full inventory ordered by ID, optionally narrowed by a
// case-insensitive name substring and an exact category match. There is no
// pagination; the UI renders the whole result set.
func (r *Repository) List(ctx context.Context, search string, categoryID *int) ([]Row, error) {
	query := r.db.WithContext(ctx).
		Table("components AS c").
		Select("c.id, c.name, c.description, c.quantity, c.status, c.image_url, cat.name AS category_name, loc.name AS location_name").
		Joins("LEFT JOIN categories cat ON c.category_id = cat.id").
		Joins("LEFT JOIN locations loc ON c.location_id = loc.id").
		Order("c.id")

	if search != "" {
		query = query.Where("LOWER(c.name) LIKE LOWER(?)", "%"+search+"%")
	}
	if categoryID != nil {
		query = query.Where("c.category_id = ?", *categoryID)
	}

	var rows []Row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a component row.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Component, error) {
	var component models.Component
	if err := r.db.WithContext(ctx).First(&component, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

// Create inserts a new component row.
func (r *Repository) Create(ctx context.Context, component *models.Component) (*models.Component, error) {
	if err := r.db.WithContext(ctx).Create(component).Error; err != nil {
		return nil, err
	}
	return component, nil
}

// Update persists the component's mutable fields. The image URL column is
// written only when replaceImage is set so an edit without a new upload
// leaves the stored reference untouched.
func (r *Repository) Update(ctx context.Context, component *models.Component, replaceImage bool) error {
	columns := []string{"name", "description", "quantity", "category_id", "location_id", "status"}
	if replaceImage {
		columns = append(columns, "image_url")
	}
	return r.db.WithContext(ctx).
		Model(&models.Component{}).
		Where("id = ?", component.ID).
		Select(columns).
		Updates(component).Error
}

// DeleteMovementsTx removes the component's ledger rows inside the
// provided transaction.
func (r *Repository) DeleteMovementsTx(tx *gorm.DB, componentID int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Where("component_id = ?", componentID).Delete(&models.Movement{}).Error
}

// DeleteComponentTx removes the component row inside the provided
// transaction.
func (r *Repository) DeleteComponentTx(tx *gorm.DB, id int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Where("id = ?", id).Delete(&models.Component{}).Error
}
