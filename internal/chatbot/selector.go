// Package chatbot produces assistant replies, either from an OpenAI-compatible
// chat-completion endpoint or from a fixed set of canned answers.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultAPIURL      = "https://api.openai.com/v1/chat/completions"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 500
	DefaultTimeout     = 20 * time.Second

	// maxResponseBytes caps how much of a completion body is read
	maxResponseBytes = 1 << 20
)

// Config configures the LLM path. An empty APIKey disables it.
type Config struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Sender marks who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// GreetingID identifies the seeded greeting, which is never replayed to the model.
const GreetingID = "greeting"

// Message is one chat turn.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Arabic    bool      `json:"is_arabic"`
}

// Source tells where a reply came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Reply is the result of Respond. It always carries usable text.
type Reply struct {
	Text   string
	Source Source
	// Topic is set for fallback replies only
	Topic Topic
	// Arabic reports whether the user's message contained Arabic script
	Arabic bool
	// Err records why the LLM path was abandoned, for logging
	Err error
}

// Responder is anything that can answer a chat message.
type Responder interface {
	Respond(ctx context.Context, message string, history []Message) Reply
}

// Selector chooses between the LLM and the canned answers.
type Selector struct {
	cfg        Config
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithHTTPClient overrides the HTTP client used for completions.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Selector) {
		s.httpClient = c
	}
}

// WithLogger sets the logger. LLM failures are logged at warn level.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Selector) {
		s.log = log
	}
}

// New builds a Selector.
func New(cfg Config, opts ...Option) *Selector {
	cfg = cfg.withDefaults()
	s := &Selector{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LLMEnabled reports whether an API key is configured.
func (s *Selector) LLMEnabled() bool {
	return strings.TrimSpace(s.cfg.APIKey) != ""
}

// Respond never fails: any LLM problem degrades to the canned answers.
func (s *Selector) Respond(ctx context.Context, message string, history []Message) Reply {
	arabic := ContainsArabic(message)

	if !s.LLMEnabled() {
		return fallbackReply(message, arabic, nil)
	}

	text, err := s.complete(ctx, message, history)
	if err != nil {
		s.log.Warn().Err(err).Str("model", s.cfg.Model).Msg("chat completion failed, using fallback")
		return fallbackReply(message, arabic, err)
	}

	return Reply{Text: text, Source: SourceLLM, Arabic: arabic}
}

func fallbackReply(message string, arabic bool, err error) Reply {
	topic, text := Fallback(message)
	return Reply{Text: text, Source: SourceFallback, Topic: topic, Arabic: arabic, Err: err}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float64             `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

var errEmptyCompletion = errors.New("completion returned no content")

// buildMessages lays out system prompt, replayed history and the new message.
func buildMessages(message string, history []Message) []completionMessage {
	msgs := make([]completionMessage, 0, len(history)+2)
	msgs = append(msgs, completionMessage{Role: "system", Content: systemPrompt})

	for _, m := range history {
		if m.ID == GreetingID {
			continue
		}
		switch m.Sender {
		case SenderUser:
			msgs = append(msgs, completionMessage{Role: "user", Content: m.Text})
		case SenderBot:
			msgs = append(msgs, completionMessage{Role: "assistant", Content: m.Text})
		}
	}

	return append(msgs, completionMessage{Role: "user", Content: message})
}

func (s *Selector) complete(ctx context.Context, message string, history []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(completionRequest{
		Model:       s.cfg.Model,
		Messages:    buildMessages(message, history),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", errEmptyCompletion
	}

	return parsed.Choices[0].Message.Content, nil
}
