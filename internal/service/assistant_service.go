package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minhanle/classhub/internal/apperr"
	"github.com/minhanle/classhub/internal/dto"
	"github.com/minhanle/classhub/internal/model"
	"github.com/minhanle/classhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// historyWindow is how many prior messages are replayed to the model.
const historyWindow = 10

type AssistantService interface {
	CreateChat(userID string, req dto.ChatCreateRequest) (*dto.ChatResponse, error)
	ListChats(userID string) ([]dto.ChatResponse, error)
	GetChat(userID, chatID string) (*dto.ChatDetailResponse, error)
	DeleteChat(userID, chatID string) error
	SendMessage(ctx context.Context, userID, chatID string, req dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error)
}

type assistantService struct {
	assistantRepo repository.AssistantRepository
	courseRepo    repository.CourseRepository
	llm           LLMService
}

func NewAssistantService(
	assistantRepo repository.AssistantRepository,
	courseRepo repository.CourseRepository,
	llm LLMService,
) AssistantService {
	return &assistantService{assistantRepo: assistantRepo, courseRepo: courseRepo, llm: llm}
}

func (s *assistantService) CreateChat(userID string, req dto.ChatCreateRequest) (*dto.ChatResponse, error) {
	if req.CourseID != nil {
		if _, err := s.courseRepo.FindByID(*req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("course not found")
			}
			return nil, err
		}
	}

	title := req.Title
	if title == "" {
		title = "New chat"
	}
	chat := &model.AssistantChat{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: req.CourseID,
		Title:    title,
	}
	if err := s.assistantRepo.CreateChat(chat); err != nil {
		return nil, err
	}
	resp := chatToResponse(chat)
	return &resp, nil
}

func (s *assistantService) ListChats(userID string) ([]dto.ChatResponse, error) {
	chats, err := s.assistantRepo.FindChatsByUser(userID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.ChatResponse, 0, len(chats))
	for i := range chats {
		responses = append(responses, chatToResponse(&chats[i]))
	}
	return responses, nil
}

func (s *assistantService) GetChat(userID, chatID string) (*dto.ChatDetailResponse, error) {
	chat, err := s.assistantRepo.FindChatWithMessages(chatID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chat not found")
		}
		return nil, err
	}

	messages := make([]dto.ChatMessageResponse, 0, len(chat.Messages))
	for _, msg := range chat.Messages {
		messages = append(messages, dto.ChatMessageResponse{
			ID:        msg.ID,
			Type:      msg.Type,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	detail := &dto.ChatDetailResponse{
		ID:       chat.ID,
		CourseID: chat.CourseID,
		Title:    chat.Title,
		Messages: messages,
	}
	if chat.Course != nil {
		detail.CourseName = chat.Course.Title
	}
	return detail, nil
}

func (s *assistantService) DeleteChat(userID, chatID string) error {
	if _, err := s.assistantRepo.FindChatByIDAndUser(chatID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("chat not found")
		}
		return err
	}
	return s.assistantRepo.DeleteChat(chatID)
}

func (s *assistantService) SendMessage(ctx context.Context, userID, chatID string, req dto.SendChatMessageRequest) (*dto.ChatMessageResponse, error) {
	chat, err := s.assistantRepo.FindChatWithMessages(chatID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("chat not found")
		}
		return nil, err
	}

	history, err := s.assistantRepo.FindRecentMessages(chatID, historyWindow)
	if err != nil {
		return nil, err
	}
	// Recent messages come back newest first; the prompt wants them in order.
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	userMessage := &model.AssistantMessage{
		ID:      uuid.NewString(),
		ChatID:  chatID,
		Type:    model.AssistantMessageUser,
		Content: req.Content,
	}
	if err := s.assistantRepo.CreateMessage(userMessage); err != nil {
		return nil, err
	}

	courseTitle := ""
	if chat.Course != nil {
		courseTitle = chat.Course.Title
	}
	reply, err := s.llm.GenerateReply(ctx, courseTitle, history, req.Content)
	if err != nil {
		log.Error().Err(err).Str("chatID", chatID).Msg("SendMessage: assistant reply failed")
		return nil, err
	}

	assistantMessage := &model.AssistantMessage{
		ID:      uuid.NewString(),
		ChatID:  chatID,
		Type:    model.AssistantMessageAssistant,
		Content: reply,
	}
	if err := s.assistantRepo.CreateMessage(assistantMessage); err != nil {
		return nil, err
	}

	preview := reply
	if len(preview) > 120 {
		preview = preview[:120]
	}
	chat.Preview = &preview
	if chat.Title == "New chat" {
		title := req.Content
		if len(title) > 60 {
			title = title[:60]
		}
		chat.Title = title
	}
	if err := s.assistantRepo.UpdateChat(chat); err != nil {
		log.Error().Err(err).Str("chatID", chatID).Msg("SendMessage: failed to update chat preview")
	}

	return &dto.ChatMessageResponse{
		ID:        assistantMessage.ID,
		Type:      assistantMessage.Type,
		Content:   assistantMessage.Content,
		CreatedAt: assistantMessage.CreatedAt,
	}, nil
}

func chatToResponse(chat *model.AssistantChat) dto.ChatResponse {
	resp := dto.ChatResponse{
		ID:        chat.ID,
		CourseID:  chat.CourseID,
		Title:     chat.Title,
		Preview:   chat.Preview,
		UpdatedAt: chat.UpdatedAt,
	}
	if chat.Course != nil {
		resp.CourseName = chat.Course.Title
	}
	return resp
}
