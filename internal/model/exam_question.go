package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuestionTypeSingle   = "single"
	QuestionTypeMultiple = "multiple"
	QuestionTypeBoolean  = "boolean"
	QuestionTypeEssay    = "essay"
)

type ExamQuestion struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	ExamID        string         `json:"exam_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_exam_question_order"`
	Type          string         `json:"type" gorm:"not null"` // single, multiple, boolean, essay
	Content       string         `json:"content" gorm:"type:text;not null"`
	Options       datatypes.JSON `json:"options,omitempty" gorm:"type:jsonb"` // ordered choice strings, null for essay
	CorrectAnswer *string        `json:"correct_answer,omitempty" gorm:"type:text"`
	Score         float64        `json:"score" gorm:"not null"`
	Order         int            `json:"order" gorm:"column:display_order;not null;uniqueIndex:idx_exam_question_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
