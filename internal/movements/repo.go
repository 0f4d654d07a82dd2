package movements

import (
	"context"
	"time"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Entry is the history read model: a movement joined with the component
// name it touched.
type Entry struct {
	ID            int       `gorm:"column:id"`
	ComponentID   int       `gorm:"column:component_id"`
	ComponentName string    `gorm:"column:component_name"`
	Kind          string    `gorm:"column:kind"`
	Quantity      int       `gorm:"column:quantity"`
	Actor         string    `gorm:"column:actor"`
	Notes         string    `gorm:"column:notes"`
	OccurredAt    time.Time `gorm:"column:occurred_at"`
}

// Repository handles movement persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to movement operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx inserts a movement row inside the provided transaction.
func (r *Repository) CreateTx(tx *gorm.DB, movement *models.Movement) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Create(movement).Error
}

// AdjustQuantityTx applies a signed delta to the component's cached
// quantity inside the provided transaction.
func (r *Repository) AdjustQuantityTx(tx *gorm.DB, componentID, delta int) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	result := tx.Model(&models.Component{}).
		Where("id = ?", componentID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ComponentExists reports whether the component row is present.
func (r *Repository) ComponentExists(ctx context.Context, componentID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Component{}).
		Where("id = ?", componentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns the ledger newest first, optionally filtered by a
// case-insensitive actor substring.
func (r *Repository) List(ctx context.Context, actor string) ([]Entry, error) {
	query := r.db.WithContext(ctx).
		Table("movements AS m").
		Select("m.id, m.component_id, c.name AS component_name, m.kind, m.quantity, m.actor, m.notes, m.occurred_at").
		Joins("JOIN components c ON m.component_id = c.id").
		Order("m.occurred_at DESC, m.id DESC")

	if actor != "" {
		query = query.Where("LOWER(m.actor) LIKE LOWER(?)", "%"+actor+"%")
	}

	var entries []Entry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
