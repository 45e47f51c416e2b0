package model

import "time"

// User is an authenticatable principal. Roles are granted through
// UserRole rows; a user never holds permissions directly.
type User struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`

	UserRoles []UserRole `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
