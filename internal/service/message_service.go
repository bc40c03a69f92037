package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"gorm.io/gorm"
)

type MessageService interface {
	SendMessage(senderID string, req dto.MessageSendRequest) (*dto.MessageResponse, error)
	GetConversation(userID, otherID string, page, limit int) (*dto.PagedResponse, error)
	UnreadCount(userID string) (*dto.UnreadCountResponse, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *messageService) SendMessage(senderID string, req dto.MessageSendRequest) (*dto.MessageResponse, error) {
	if senderID == req.ReceiverID {
		return nil, apperr.Invalid("cannot send a message to yourself")
	}
	if _, err := s.userRepo.FindByID(req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("receiver not found")
		}
		return nil, err
	}

	message := &model.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}
	return messageToResponse(message), nil
}

// GetConversation returns the two-way history and marks the other party's
// messages as read as a side effect of viewing.
func (s *messageService) GetConversation(userID, otherID string, page, limit int) (*dto.PagedResponse, error) {
	messages, total, err := s.messageRepo.FindConversation(userID, otherID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.MarkConversationRead(userID, otherID); err != nil {
		return nil, err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, *messageToResponse(&messages[i]))
	}
	resp := dto.NewPagedResponse(items, total, page, limit)
	return &resp, nil
}

func (s *messageService) UnreadCount(userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.messageRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func messageToResponse(message *model.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		SenderName: message.Sender.Name,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		Read:       message.Read,
		CreatedAt:  message.CreatedAt,
	}
}
