package model

import (
	"time"
)

const (
	AssistantMessageUser      = "user"
	AssistantMessageAssistant = "assistant"
)

type AssistantMessage struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ChatID    string    `json:"chat_id" gorm:"type:uuid;not null;index"`
	Type      string    `json:"type" gorm:"not null"` // user, assistant
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
