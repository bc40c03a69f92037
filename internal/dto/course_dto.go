package dto

import "time"

type CourseCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Semester    string `json:"semester" binding:"required"`
}

type CourseUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Semester    string `json:"semester"`
}

type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TeacherID   string    `json:"teacher_id"`
	TeacherName string    `json:"teacher_name,omitempty"`
	Semester    string    `json:"semester"`
	CreatedAt   time.Time `json:"created_at"`
}

type EnrollRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
}
