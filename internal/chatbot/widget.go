package chatbot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"
)

// State is the widget's position in its open/send cycle.
type State int

const (
	StateClosed State = iota
	StateAwaitingInput
	StateSending
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateSending:
		return "sending"
	default:
		return "unknown"
	}
}

var (
	ErrWidgetClosed = errors.New("chat widget is closed")
	ErrWidgetBusy   = errors.New("a message is already being sent")
	ErrEmptyMessage = errors.New("message is empty")
)

// Widget is one chat window. The message list lives only in memory and
// survives close/open cycles.
type Widget struct {
	responder Responder
	now       func() time.Time

	mu       sync.Mutex
	open     bool
	sending  bool
	language Language
	messages []Message
	seq      int
}

// NewWidget creates a closed widget seeded with the English greeting.
func NewWidget(r Responder) *Widget {
	w := &Widget{
		responder: r,
		now:       time.Now,
		language:  English,
	}
	w.messages = []Message{{
		ID:        GreetingID,
		Text:      GreetingEnglish,
		Sender:    SenderBot,
		Timestamp: w.now(),
	}}
	return w
}

// State returns the current state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state()
}

func (w *Widget) state() State {
	switch {
	case !w.open:
		return StateClosed
	case w.sending:
		return StateSending
	default:
		return StateAwaitingInput
	}
}

// Open shows the widget with the default language.
func (w *Widget) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = true
	w.language = English
}

// Close hides the widget. History is kept; the language preference resets.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
	w.language = English
}

// Language returns the current display language.
func (w *Widget) Language() Language {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.language
}

// Messages returns a copy of the conversation.
func (w *Widget) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// QuickReplies returns suggestions to show under the last bot message, or nil
// while a reply is pending or the user spoke last.
func (w *Widget) QuickReplies() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sending || len(w.messages) == 0 || w.messages[len(w.messages)-1].Sender != SenderBot {
		return nil
	}
	return QuickReplies(w.language == Arabic)
}

// Send posts a user message and waits for the reply. The widget is in
// StateSending for the duration of the call.
func (w *Widget) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}

	w.mu.Lock()
	switch w.state() {
	case StateClosed:
		w.mu.Unlock()
		return Message{}, ErrWidgetClosed
	case StateSending:
		w.mu.Unlock()
		return Message{}, ErrWidgetBusy
	}

	history := make([]Message, len(w.messages))
	copy(history, w.messages)

	userArabic := ContainsArabic(text)
	if userArabic {
		w.language = Arabic
	}
	w.messages = append(w.messages, w.newMessage(text, SenderUser, userArabic))
	w.sending = true
	w.mu.Unlock()

	reply := w.responder.Respond(ctx, text, history)

	w.mu.Lock()
	defer w.mu.Unlock()

	replyArabic := ContainsArabic(reply.Text)
	if replyArabic {
		w.language = Arabic
	}
	bot := w.newMessage(reply.Text, SenderBot, replyArabic)
	w.messages = append(w.messages, bot)
	w.sending = false
	return bot, nil
}

func (w *Widget) newMessage(text string, sender Sender, arabic bool) Message {
	w.seq++
	return Message{
		ID:        strconv.Itoa(w.seq),
		Text:      text,
		Sender:    sender,
		Timestamp: w.now(),
		Arabic:    arabic,
	}
}
