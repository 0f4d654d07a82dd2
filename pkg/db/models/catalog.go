package models

// Category classifies components (e.g. resistors, microcontrollers).
type Category struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}

// Location names a physical storage place (shelf, drawer, cabinet).
type Location struct {
	ID   int    `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}
