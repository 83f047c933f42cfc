package services

import (
	"context"
	"errors"
	"testing"

	"github.com/futureintern/platform/internal/app/models/dto"
	"github.com/futureintern/platform/internal/chatbot"
	"github.com/futureintern/platform/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	reply   chatbot.Reply
	message string
	history []chatbot.Message
}

func (s *stubResponder) Respond(_ context.Context, message string, history []chatbot.Message) chatbot.Reply {
	s.message = message
	s.history = history
	return s.reply
}

func TestChat_MapsReply(t *testing.T) {
	responder := &stubResponder{reply: chatbot.Reply{
		Text:   "جواب",
		Source: chatbot.SourceFallback,
		Topic:  chatbot.TopicApply,
		Arabic: true,
		Err:    errors.New("llm disabled"),
	}}
	svc := NewChatbotService(responder, zerolog.Nop())

	resp, err := svc.Chat(context.Background(), &dto.ChatRequest{
		Message: "  كيف أتقدم؟ ",
		History: []dto.ChatTurn{{Text: "مرحبا", Sender: "user"}, {Text: "Hi!", Sender: "bot"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "كيف أتقدم؟", responder.message)
	require.Len(t, responder.history, 2)
	assert.True(t, responder.history[0].Arabic)
	assert.Equal(t, chatbot.SenderBot, responder.history[1].Sender)
	assert.False(t, responder.history[1].Arabic)

	assert.Equal(t, "جواب", resp.Response)
	assert.Equal(t, "fallback", resp.Source)
	assert.Equal(t, "apply", resp.Topic)
	assert.True(t, resp.IsArabic)
	assert.Equal(t, chatbot.QuickReplies(true), resp.Suggestions)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestChat_EmptyMessage(t *testing.T) {
	svc := NewChatbotService(&stubResponder{}, zerolog.Nop())
	_, err := svc.Chat(context.Background(), &dto.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestFAQs(t *testing.T) {
	svc := NewChatbotService(&stubResponder{}, zerolog.Nop())
	faqs := svc.FAQs()
	require.NotEmpty(t, faqs)
	assert.Equal(t, len(chatbot.FAQs()), len(faqs))
	assert.NotEmpty(t, faqs[0].Answer)
}
