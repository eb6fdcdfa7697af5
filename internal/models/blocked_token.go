package models

import "time"

// BlockedToken records the access token that was active when a device logged
// out. The guard rejects exactly that (user, device, token) triple; a token
// issued after the logout is not affected.
type BlockedToken struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_blocked_user_device"`
	DeviceID    string    `json:"deviceId" gorm:"type:varchar(255);not null;uniqueIndex:idx_blocked_user_device"`
	AccessToken string    `json:"-" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime;not null"`
}

// TableName specifies the table name for GORM
func (BlockedToken) TableName() string {
	return "blocked_tokens"
}
