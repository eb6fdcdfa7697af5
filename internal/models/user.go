package models

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;type:varchar(255)"`
	Password  string    `json:"-" gorm:"not null;type:varchar(255)"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime;not null"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
