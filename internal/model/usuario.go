package model

import "time"

// Usuario stores system accounts with role-based access.
// Role: "ADMIN" | "USER" — enforced by a CHECK constraint at the storage layer.
//
// Password is stored and compared verbatim, matching the deployed behavior of
// the system this service replaces. See DESIGN.md before "fixing" this.
type Usuario struct {
	ID        uint   `gorm:"column:id_user;primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"type:varchar(10);not null"`
	LastLogin *time.Time
}

func (Usuario) TableName() string { return "usuarios" }
