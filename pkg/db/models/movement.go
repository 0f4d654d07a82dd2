package models

import (
	"time"

	"github.com/Arthur-020/labstock-backend/pkg/enums"
)

// Movement is an append-only ledger row recording a quantity-changing event
// against a component. Rows are never updated or individually deleted; they
// are removed only as part of deleting the owning component.
type Movement struct {
	ID          int                `gorm:"primaryKey;autoIncrement"`
	ComponentID int                `gorm:"column:component_id;not null;index"`
	Kind        enums.MovementKind `gorm:"column:kind;not null"`
	Quantity    int                `gorm:"column:quantity;not null"`
	Actor       string             `gorm:"column:actor;not null"`
	Notes       string             `gorm:"column:notes"`
	OccurredAt  time.Time          `gorm:"column:occurred_at;autoCreateTime"`
}
