package dto

import "time"

// Presented assignment statuses, derived lazily per student.
const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusSubmitted = "submitted"
	AssignmentStatusGraded    = "graded"
	AssignmentStatusOverdue   = "overdue"
)

type AssignmentCreateRequest struct {
	CourseID    string    `json:"course_id" binding:"required,uuid"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	TotalScore  float64   `json:"total_score" binding:"required,gt=0"`
}

type AssignmentListItem struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CourseID     string     `json:"course_id"`
	CourseName   string     `json:"course_name,omitempty"`
	DueDate      time.Time  `json:"due_date"`
	TotalScore   float64    `json:"total_score"`
	Status       string     `json:"status"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	Score        *float64   `json:"score,omitempty"`
	SubmissionID *string    `json:"submission_id,omitempty"`
}

type AssignmentSubmitRequest struct {
	Content string `json:"content" binding:"required"`
}

type AssignmentSubmissionResponse struct {
	ID           string     `json:"id"`
	AssignmentID string     `json:"assignment_id"`
	StudentID    string     `json:"student_id"`
	StudentName  string     `json:"student_name,omitempty"`
	Content      string     `json:"content,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Score        *float64   `json:"score,omitempty"`
	Feedback     *string    `json:"feedback,omitempty"`
	Status       string     `json:"status"`
}

type AssignmentGradeRequest struct {
	Score    float64 `json:"score" binding:"min=0"`
	Feedback *string `json:"feedback"`
}
