package services

import (
	"context"
	"strings"
	"time"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/chatbot"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/futureintern/platform/internal/pkg/metrics"
	"github.com/rs/zerolog"
)

// ChatbotService answers assistant messages
type ChatbotService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	FAQs() []dto.FAQEntry
}

type chatbotServiceImpl struct {
	responder chatbot.Responder
	logger    zerolog.Logger
}

// NewChatbotService creates a new ChatbotService
func NewChatbotService(responder chatbot.Responder, logger zerolog.Logger) ChatbotService {
	return &chatbotServiceImpl{
		responder: responder,
		logger:    logger,
	}
}

// Chat answers one message. The reply always has text; LLM failures fall back to canned answers.
func (s *chatbotServiceImpl) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message", "message cannot be empty")
	}

	history := make([]chatbot.Message, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, chatbot.Message{
			Text:   turn.Text,
			Sender: chatbot.Sender(turn.Sender),
			Arabic: chatbot.ContainsArabic(turn.Text),
		})
	}

	reply := s.responder.Respond(ctx, message, history)
	metrics.ChatbotRepliesTotal.WithLabelValues(string(reply.Source)).Inc()
	if reply.Err != nil {
		s.logger.Warn().Err(reply.Err).Str("topic", string(reply.Topic)).Msg("Chatbot fell back to canned answer")
	}

	return &dto.ChatResponse{
		Response:    reply.Text,
		Source:      string(reply.Source),
		Topic:       string(reply.Topic),
		IsArabic:    reply.Arabic,
		Suggestions: chatbot.QuickReplies(reply.Arabic),
		Timestamp:   time.Now().UTC(),
	}, nil
}

// FAQs lists the canned topics
func (s *chatbotServiceImpl) FAQs() []dto.FAQEntry {
	faqs := chatbot.FAQs()
	out := make([]dto.FAQEntry, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, dto.FAQEntry{Topic: string(f.Topic), Question: f.Question, Answer: f.Answer})
	}
	return out
}
