package models

import (
	"github.com/Arthur-020/labstock-backend/pkg/enums"
)

// User represents a LabStock account. Role is assigned at creation by a
// teacher and never changes afterwards.
type User struct {
	ID           int            `gorm:"primaryKey;autoIncrement"`
	DisplayName  string         `gorm:"column:display_name;not null"`
	Login        string         `gorm:"column:login;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;not null"`
}
