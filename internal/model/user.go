package model

import (
	"time"
)

// UserModel is a service account. Password holds the bcrypt hash only; the
// raw password never reaches the store or the logs.
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UUID     string `json:"uuid" gorm:"size:36;not null;uniqueIndex"`
	Username string `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email    string `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:128;not null"`

	IsActive bool `json:"is_active" gorm:"default:true"`
	IsAdmin  bool `json:"is_admin" gorm:"default:false"`
}

// TableName sets a singular table name ("user" is reserved in postgres).
func (UserModel) TableName() string {
	return "app_user"
}
