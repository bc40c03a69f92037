package dto

import "time"

// Presented exam statuses, derived per student from the clock and the
// submission record. Distinct from submission statuses.
const (
	ExamStatusNotStarted = "not_started"
	ExamStatusOngoing    = "ongoing"
	ExamStatusEnded      = "ended"
)

type ExamQuestionCreateRequest struct {
	Type          string   `json:"type" binding:"required,oneof=single multiple boolean essay"`
	Content       string   `json:"content" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correct_answer"`
	Score         float64  `json:"score" binding:"required,gt=0"`
	Order         int      `json:"order" binding:"required,min=1"`
}

type ExamCreateRequest struct {
	CourseID    string                      `json:"course_id" binding:"required,uuid"`
	Title       string                      `json:"title" binding:"required"`
	Description string                      `json:"description"`
	StartTime   time.Time                   `json:"start_time" binding:"required"`
	EndTime     time.Time                   `json:"end_time" binding:"required"`
	Duration    int                         `json:"duration" binding:"required,gt=0"`
	TotalScore  float64                     `json:"total_score" binding:"required,gt=0"`
	Questions   []ExamQuestionCreateRequest `json:"questions" binding:"required,min=1,dive"`
}

// ExamListItem is one row of the student's exam list, with the status derived
// for that student at request time.
type ExamListItem struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	CourseID     string     `json:"course_id"`
	CourseName   string     `json:"course_name,omitempty"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Duration     int        `json:"duration"`
	TotalScore   float64    `json:"total_score"`
	Status       string     `json:"status"`
	SubmissionID *string    `json:"submission_id,omitempty"`
	SubmitTime   *time.Time `json:"submit_time,omitempty"`
	Score        *float64   `json:"score,omitempty"`
}

// ExamSessionQuestion joins a question with the student's current answer.
// CorrectAnswer is never included here.
type ExamSessionQuestion struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Content    string   `json:"content"`
	Options    []string `json:"options,omitempty"`
	Score      float64  `json:"score"`
	Order      int      `json:"order"`
	AnswerID   string   `json:"answer_id"`
	UserAnswer *string  `json:"user_answer,omitempty"`
}

// ExamSessionResponse is returned by start-or-resume.
type ExamSessionResponse struct {
	ExamID           string                `json:"exam_id"`
	Title            string                `json:"title"`
	Description      string                `json:"description,omitempty"`
	SubmissionID     string                `json:"submission_id"`
	Status           string                `json:"status"`
	StartTime        time.Time             `json:"start_time"`
	Deadline         time.Time             `json:"deadline"`
	Duration         int                   `json:"duration"`
	RemainingSeconds int                   `json:"remaining_seconds"`
	Questions        []ExamSessionQuestion `json:"questions"`
}

type SaveAnswerRequest struct {
	Answer *string `json:"answer"`
}

type SaveAnswerResponse struct {
	ID     string  `json:"id"`
	Answer *string `json:"answer,omitempty"`
}

type SubmitExamResponse struct {
	ID         string     `json:"id"`
	ExamID     string     `json:"exam_id"`
	Status     string     `json:"status"`
	SubmitTime *time.Time `json:"submit_time,omitempty"`
}

type GradeAnswerRequest struct {
	Score     float64 `json:"score" binding:"min=0"`
	IsCorrect *bool   `json:"is_correct"`
}

type SubmissionSummary struct {
	ID          string     `json:"id"`
	StudentID   string     `json:"student_id"`
	StudentName string     `json:"student_name,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	SubmitTime  *time.Time `json:"submit_time,omitempty"`
	Status      string     `json:"status"`
	TotalScore  *float64   `json:"total_score,omitempty"`
}

type SubmissionAnswerDetail struct {
	ID            string   `json:"id"`
	QuestionID    string   `json:"question_id"`
	Type          string   `json:"type"`
	Content       string   `json:"content"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *string  `json:"correct_answer,omitempty"`
	MaxScore      float64  `json:"max_score"`
	Answer        *string  `json:"answer,omitempty"`
	Score         *float64 `json:"score,omitempty"`
	IsCorrect     *bool    `json:"is_correct,omitempty"`
}

type SubmissionDetailResponse struct {
	ID          string                   `json:"id"`
	ExamID      string                   `json:"exam_id"`
	StudentID   string                   `json:"student_id"`
	StudentName string                   `json:"student_name,omitempty"`
	StartTime   time.Time                `json:"start_time"`
	SubmitTime  *time.Time               `json:"submit_time,omitempty"`
	Status      string                   `json:"status"`
	TotalScore  *float64                 `json:"total_score,omitempty"`
	Answers     []SubmissionAnswerDetail `json:"answers"`
}
