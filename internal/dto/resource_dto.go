package dto

import "time"

type ResourceCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	URL      string `json:"url" binding:"required,url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size" binding:"min=0"`
}

type ResourceResponse struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"course_id"`
	UploaderID   string    `json:"uploader_id"`
	UploaderName string    `json:"uploader_name,omitempty"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	MimeType     string    `json:"mime_type,omitempty"`
	Size         int64     `json:"size,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
