package model

// RolePermission grants a permission to a role. The composite primary
// key keeps a given permission from being granted to the same role twice.
type RolePermission struct {
	RoleID       int `gorm:"column:role_id;primaryKey"`
	PermissionID int `gorm:"column:permission_id;primaryKey"`

	Role       Role       `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
