package repository

import (
	"github.com/minhanle/classhub/internal/model"
	"gorm.io/gorm"
)

type AssistantRepository interface {
	CreateChat(chat *model.AssistantChat) error
	UpdateChat(chat *model.AssistantChat) error
	FindChatsByUser(userID string) ([]model.AssistantChat, error)
	FindChatByIDAndUser(chatID, userID string) (*model.AssistantChat, error)
	FindChatWithMessages(chatID, userID string) (*model.AssistantChat, error)
	DeleteChat(chatID string) error

	CreateMessage(message *model.AssistantMessage) error
	FindRecentMessages(chatID string, limit int) ([]model.AssistantMessage, error)
}

type assistantRepository struct {
	db *gorm.DB
}

func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{db: db}
}

func (r *assistantRepository) CreateChat(chat *model.AssistantChat) error {
	return r.db.Create(chat).Error
}

func (r *assistantRepository) UpdateChat(chat *model.AssistantChat) error {
	return r.db.Save(chat).Error
}

func (r *assistantRepository) FindChatsByUser(userID string) ([]model.AssistantChat, error) {
	var chats []model.AssistantChat
	err := r.db.Preload("Course").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *assistantRepository) FindChatByIDAndUser(chatID, userID string) (*model.AssistantChat, error) {
	var chat model.AssistantChat
	err := r.db.Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *assistantRepository) FindChatWithMessages(chatID, userID string) (*model.AssistantChat, error) {
	var chat model.AssistantChat
	err := r.db.
		Preload("Course").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("assistant_messages.created_at ASC")
		}).
		Where("id = ? AND user_id = ?", chatID, userID).
		First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *assistantRepository) DeleteChat(chatID string) error {
	return r.db.Delete(&model.AssistantChat{}, "id = ?", chatID).Error
}

func (r *assistantRepository) CreateMessage(message *model.AssistantMessage) error {
	return r.db.Create(message).Error
}

func (r *assistantRepository) FindRecentMessages(chatID string, limit int) ([]model.AssistantMessage, error) {
	var messages []model.AssistantMessage
	err := r.db.Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
