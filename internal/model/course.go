package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	TeacherID   string         `json:"teacher_id" gorm:"type:uuid;not null;index"`
	Teacher     User           `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Semester    string         `json:"semester" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// CourseStudent is the enrollment join row. The unique index is the final
// arbiter for duplicate enrollments.
type CourseStudent struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  string    `json:"course_id" gorm:"type:uuid;not null;uniqueIndex:idx_course_student"`
	StudentID string    `json:"student_id" gorm:"type:uuid;not null;uniqueIndex:idx_course_student"`
	Course    Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Student   User      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	CreatedAt time.Time `json:"created_at"`
}
