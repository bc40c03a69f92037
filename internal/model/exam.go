package model

import (
	"time"

	"gorm.io/gorm"
)

type Exam struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    string         `json:"course_id" gorm:"type:uuid;not null;index"`
	Course      Course         `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	TeacherID   string         `json:"teacher_id" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	StartTime   time.Time      `json:"start_time" gorm:"not null"`
	EndTime     time.Time      `json:"end_time" gorm:"not null"`
	Duration    int            `json:"duration" gorm:"not null"` // minutes, counted from each submission's own start
	TotalScore  float64        `json:"total_score" gorm:"not null;default:100"`
	Questions   []ExamQuestion `json:"questions,omitempty" gorm:"foreignKey:ExamID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
