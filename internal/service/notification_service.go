package service

import (
	"errors"

	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/repository"
	"gorm.io/gorm"
)

type NotificationService interface {
	ListNotifications(userID string, page, limit int) (*dto.PagedResponse, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(userID string, page, limit int) (*dto.PagedResponse, error) {
	notifications, total, err := s.notificationRepo.FindAllByUser(userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Content:   n.Content,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	resp := dto.NewPagedResponse(items, total, page, limit)
	return &resp, nil
}

func (s *notificationService) MarkRead(userID, notificationID string) error {
	// Scoping the lookup by user prevents marking someone else's row.
	if _, err := s.notificationRepo.FindByIDAndUser(notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("notification not found")
		}
		return err
	}
	return s.notificationRepo.MarkRead(notificationID)
}

func (s *notificationService) MarkAllRead(userID string) error {
	return s.notificationRepo.MarkAllRead(userID)
}
