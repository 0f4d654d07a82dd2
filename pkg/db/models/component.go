package models

import "time"

// Component is a physical inventory item. Quantity is a denormalized cache
// of the signed sum of the component's movement deltas; it is adjusted in
// the same transaction that inserts each movement row.
type Component struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	CategoryID  *int      `gorm:"column:category_id"`
	LocationID  *int      `gorm:"column:location_id"`
	Status      string    `gorm:"column:status"`
	ImageURL    *string   `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
