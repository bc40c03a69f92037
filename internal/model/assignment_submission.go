package model

import (
	"time"
)

const (
	AssignmentStatusSubmitted = "submitted"
	AssignmentStatusGraded    = "graded"
)

type AssignmentSubmission struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID string     `json:"assignment_id" gorm:"type:uuid;not null;uniqueIndex:idx_assignment_student"`
	StudentID    string     `json:"student_id" gorm:"type:uuid;not null;uniqueIndex:idx_assignment_student"`
	Assignment   Assignment `json:"assignment,omitempty" gorm:"foreignKey:AssignmentID"`
	Student      User       `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Content      string     `json:"content" gorm:"type:text"`
	SubmittedAt  time.Time  `json:"submitted_at" gorm:"not null"`
	Score        *float64   `json:"score,omitempty"`
	Feedback     *string    `json:"feedback,omitempty" gorm:"type:text"`
	Status       string     `json:"status" gorm:"not null;default:'submitted'"` // submitted, graded
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
