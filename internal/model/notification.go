package model

import (
	"time"
)

const (
	NotificationTypeSystem       = "system"
	NotificationTypeCourse       = "course"
	NotificationTypeAssignment   = "assignment"
	NotificationTypeExam         = "exam"
	NotificationTypeAnnouncement = "announcement"
)

type Notification struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      string    `json:"type" gorm:"not null;default:'system'"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}
