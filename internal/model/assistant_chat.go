package model

import (
	"time"

	"gorm.io/gorm"
)

type AssistantChat struct {
	ID        string             `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string             `json:"user_id" gorm:"type:uuid;not null;index"`
	CourseID  *string            `json:"course_id,omitempty" gorm:"type:uuid;index"`
	Course    *Course            `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Title     string             `json:"title" gorm:"not null;default:'New chat'"`
	Preview   *string            `json:"preview,omitempty" gorm:"type:text"`
	Messages  []AssistantMessage `json:"messages,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
}
