package model

import (
	"time"

	"gorm.io/gorm"
)

type Announcement struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  string         `json:"course_id" gorm:"type:uuid;not null;index"`
	Course    Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	CreatorID string         `json:"creator_id" gorm:"type:uuid;not null;index"`
	Creator   User           `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
