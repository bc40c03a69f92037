package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/minhanle/classhub/config"
	"github.com/minhanle/classhub/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// LLMService produces assistant replies. The implementation is swappable so
// tests can stub it out.
type LLMService interface {
	GenerateReply(ctx context.Context, courseTitle string, history []model.AssistantMessage, userMessage string) (string, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (LLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. LLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &geminiLLMService{client: model, cfg: cfg}, nil
}

func (s *geminiLLMService) GenerateReply(ctx context.Context, courseTitle string, history []model.AssistantMessage, userMessage string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	var prompt strings.Builder
	prompt.WriteString("You are a helpful study assistant for university students.\n")
	if courseTitle != "" {
		prompt.WriteString(fmt.Sprintf("The conversation is about the course %q. Keep answers relevant to it.\n", courseTitle))
	}
	prompt.WriteString("Answer clearly and concisely. Do not invent facts about grades or deadlines.\n\n")

	if len(history) > 0 {
		prompt.WriteString("Conversation so far:\n")
		for _, msg := range history {
			role := "Student"
			if msg.Type == model.AssistantMessageAssistant {
				role = "Assistant"
			}
			prompt.WriteString(fmt.Sprintf("%s: %s\n", role, msg.Content))
		}
		prompt.WriteString("\n")
	}
	prompt.WriteString("Student: ")
	prompt.WriteString(userMessage)
	prompt.WriteString("\nAssistant:")

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during reply generation")
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	reply := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			reply += string(txt)
		}
	}
	if reply == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return strings.TrimSpace(reply), nil
}
