package model

import "time"

// Role is a named bundle of permissions, grantable to users.
type Role struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	RolePermissions []RolePermission `gorm:"foreignKey:RoleID"`
	UserRoles       []UserRole       `gorm:"foreignKey:RoleID"`
}

func (Role) TableName() string {
	return "roles"
}
