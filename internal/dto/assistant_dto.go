package dto

import "time"

type ChatCreateRequest struct {
	CourseID *string `json:"course_id" binding:"omitempty,uuid"`
	Title    string  `json:"title"`
}

type ChatResponse struct {
	ID         string    `json:"id"`
	CourseID   *string   `json:"course_id,omitempty"`
	CourseName string    `json:"course_name,omitempty"`
	Title      string    `json:"title"`
	Preview    *string   `json:"preview,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatDetailResponse struct {
	ID         string                `json:"id"`
	CourseID   *string               `json:"course_id,omitempty"`
	CourseName string                `json:"course_name,omitempty"`
	Title      string                `json:"title"`
	Messages   []ChatMessageResponse `json:"messages"`
}

type SendChatMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
