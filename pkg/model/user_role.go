package model

// UserRole grants a role to a user. The composite primary key keeps a
// given role from being granted to the same user twice.
type UserRole struct {
	UserID int `gorm:"column:user_id;primaryKey"`
	RoleID int `gorm:"column:role_id;primaryKey"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
