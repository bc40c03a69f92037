package model

import (
	"time"
)

// ExamAnswer rows are created in batch when the submission starts (answer
// null) and mutated in place while the submission is ongoing. Score and
// IsCorrect stay null until the teacher grades them.
type ExamAnswer struct {
	ID           string         `gorm:"type:uuid;primaryKey" json:"id"`
	SubmissionID string         `json:"submission_id" gorm:"type:uuid;not null;index"`
	QuestionID   string         `json:"question_id" gorm:"type:uuid;not null;index"`
	Submission   ExamSubmission `json:"-" gorm:"foreignKey:SubmissionID"`
	Question     ExamQuestion   `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	Answer       *string        `json:"answer,omitempty" gorm:"type:text"`
	Score        *float64       `json:"score,omitempty"`
	IsCorrect    *bool          `json:"is_correct,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
