package models

import "time"

// Session holds the active token pair for one (user, device) pair.
// Signing in on one device never touches the sessions of other devices.
type Session struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_sessions_user_device"`
	DeviceID     string    `json:"deviceId" gorm:"type:varchar(255);not null;uniqueIndex:idx_sessions_user_device"`
	AccessToken  string    `json:"-" gorm:"type:text;not null"`
	RefreshToken string    `json:"-" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime;not null"`
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "sessions"
}
