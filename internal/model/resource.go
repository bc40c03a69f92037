package model

import (
	"time"

	"gorm.io/gorm"
)

// Resource stores upload metadata only; the bytes live wherever URL points.
type Resource struct {
	ID         string         `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID   string         `json:"course_id" gorm:"type:uuid;not null;index"`
	Course     Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	UploaderID string         `json:"uploader_id" gorm:"type:uuid;not null;index"`
	Uploader   User           `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`
	Name       string         `json:"name" gorm:"not null"`
	URL        string         `json:"url" gorm:"not null"`
	MimeType   string         `json:"mime_type,omitempty"`
	Size       int64          `json:"size,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
