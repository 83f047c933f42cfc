package dto

import "time"

// ChatTurn is one prior message sent along with a chat request
type ChatTurn struct {
	Text   string `json:"text" binding:"required"`
	Sender string `json:"sender" binding:"required,oneof=user bot"`
}

// ChatRequest is a message to the assistant
type ChatRequest struct {
	Message string     `json:"message" binding:"required,max=2000"`
	History []ChatTurn `json:"history" binding:"omitempty,max=50,dive"`
}

// ChatResponse is the assistant's answer
type ChatResponse struct {
	Response    string    `json:"response"`
	Source      string    `json:"source"`
	Topic       string    `json:"topic,omitempty"`
	IsArabic    bool      `json:"is_arabic"`
	Suggestions []string  `json:"suggestions"`
	Timestamp   time.Time `json:"timestamp"`
}

// FAQEntry is one canned topic
type FAQEntry struct {
	Topic    string `json:"topic"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQResponse wraps the canned topics
type FAQResponse struct {
	FAQs []FAQEntry `json:"faqs"`
}
