package gateway

import (
	"context"
	"fmt"
)

// ChatbotService forwards messages to the server-side assistant.
type ChatbotService struct {
	client *Client
}

// MaxHistory is the most earlier turns the server accepts with a message.
const MaxHistory = 50

type chatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history,omitempty"`
}

// Send posts one message with the conversation so far and returns the
// server's reply. Only the latest MaxHistory turns are sent.
func (s *ChatbotService) Send(ctx context.Context, message string, history ...ChatTurn) (*ChatReply, error) {
	if len(history) > MaxHistory {
		history = history[len(history)-MaxHistory:]
	}
	var reply ChatReply
	if err := s.client.post(ctx, "/chatbot/chat", chatRequest{Message: message, History: history}, &reply); err != nil {
		return nil, err
	}
	if reply.Response == "" {
		return nil, fmt.Errorf("chatbot reply was empty")
	}
	return &reply, nil
}
