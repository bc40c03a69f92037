package model

import (
	"time"
)

type Message struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   string    `json:"sender_id" gorm:"type:uuid;not null;index"`
	ReceiverID string    `json:"receiver_id" gorm:"type:uuid;not null;index"`
	Sender     User      `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver   User      `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	Read       bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}
