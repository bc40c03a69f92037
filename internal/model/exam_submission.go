package model

import (
	"time"
)

const (
	SubmissionStatusOngoing   = "ongoing"
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// ExamSubmission is a student's single attempt record for one exam. The unique
// index on (exam_id, student_id) is what makes "start exam" idempotent under
// concurrent calls.
type ExamSubmission struct {
	ID         string       `gorm:"type:uuid;primaryKey" json:"id"`
	ExamID     string       `json:"exam_id" gorm:"type:uuid;not null;uniqueIndex:idx_exam_student"`
	StudentID  string       `json:"student_id" gorm:"type:uuid;not null;uniqueIndex:idx_exam_student"`
	Exam       Exam         `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Student    User         `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	StartTime  time.Time    `json:"start_time" gorm:"not null"`
	SubmitTime *time.Time   `json:"submit_time,omitempty"`
	TotalScore *float64     `json:"total_score,omitempty"`
	Status     string       `json:"status" gorm:"not null;default:'ongoing'"` // ongoing, submitted, graded
	Answers    []ExamAnswer `json:"answers,omitempty" gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
