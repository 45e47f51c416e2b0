package model

import "time"

// Permission is an atomic capability named "<Module>.<Action>".
// Rows are created by the catalog synchronizer (or explicit admin
// insertion), never implicitly by the authorization gate.
type Permission struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Module      string    `gorm:"column:module;not null"`
	Action      string    `gorm:"column:action;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	RolePermissions []RolePermission `gorm:"foreignKey:PermissionID"`
}

func (Permission) TableName() string {
	return "permissions"
}
