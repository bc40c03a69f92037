package model

import (
	"time"
)

// Grade holds the teacher-entered score channels for one student in one
// course and semester. TotalScore is authoritative as stored; it is never
// recomputed from the channel weights.
type Grade struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID  string    `json:"student_id" gorm:"type:uuid;not null;uniqueIndex:idx_grade_student_course_semester"`
	CourseID   string    `json:"course_id" gorm:"type:uuid;not null;uniqueIndex:idx_grade_student_course_semester"`
	Semester   string    `json:"semester" gorm:"not null;uniqueIndex:idx_grade_student_course_semester"`
	Student    User      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course     Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	ClassScore *float64  `json:"class_score,omitempty"`
	RainScore  *float64  `json:"rain_score,omitempty"`
	ExamScore  *float64  `json:"exam_score,omitempty"`
	TotalScore *float64  `json:"total_score,omitempty"`
	Comment    *string   `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
