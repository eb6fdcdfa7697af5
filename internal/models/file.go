package models

import "time"

// File is the metadata record for one uploaded blob. Files are not owned by
// a user; there is no relation to the users table.
type File struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	OriginalName string    `json:"originalName" gorm:"not null;type:varchar(255)"`
	StoredName   string    `json:"fileName" gorm:"column:file_name;uniqueIndex;not null;type:varchar(255)"`
	Extension    string    `json:"extension" gorm:"type:varchar(32)"`
	MimeType     string    `json:"mimeType" gorm:"type:varchar(255)"`
	Size         int64     `json:"size" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime;not null"`
}

// TableName specifies the table name for GORM
func (File) TableName() string {
	return "files"
}
