package chatbot

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	mu      sync.Mutex
	reply   string
	history [][]Message
	block   chan struct{}
	entered chan struct{}
}

func (s *stubResponder) Respond(ctx context.Context, message string, history []Message) Reply {
	s.mu.Lock()
	s.history = append(s.history, history)
	s.mu.Unlock()
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}
	return Reply{Text: s.reply, Source: SourceFallback}
}

func TestWidget_Lifecycle(t *testing.T) {
	r := &stubResponder{reply: "answer"}
	w := NewWidget(r)

	assert.Equal(t, StateClosed, w.State())
	_, err := w.Send(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrWidgetClosed)

	w.Open()
	assert.Equal(t, StateAwaitingInput, w.State())

	_, err = w.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	bot, err := w.Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "answer", bot.Text)
	assert.Equal(t, StateAwaitingInput, w.State())

	msgs := w.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, GreetingID, msgs[0].ID)
	assert.Equal(t, SenderUser, msgs[1].Sender)
	assert.Equal(t, SenderBot, msgs[2].Sender)

	// history handed to the responder excludes the new message
	require.Len(t, r.history, 1)
	assert.Len(t, r.history[0], 1)

	w.Close()
	assert.Equal(t, StateClosed, w.State())
	w.Open()
	assert.Len(t, w.Messages(), 3)
}

func TestWidget_ArabicSwitchesLanguageAndResetsOnReopen(t *testing.T) {
	w := NewWidget(&stubResponder{reply: "أهلاً"})
	w.Open()

	_, err := w.Send(context.Background(), "مرحبا")
	require.NoError(t, err)

	assert.Equal(t, Arabic, w.Language())
	assert.Equal(t, "rtl", w.Language().Direction())
	assert.Equal(t, QuickReplies(true), w.QuickReplies())

	msgs := w.Messages()
	assert.True(t, msgs[1].Arabic)
	assert.True(t, msgs[2].Arabic)

	w.Close()
	w.Open()
	assert.Equal(t, English, w.Language())
	assert.Equal(t, QuickReplies(false), w.QuickReplies())
}

func TestWidget_RejectsSendWhileSending(t *testing.T) {
	r := &stubResponder{reply: "done", block: make(chan struct{}), entered: make(chan struct{}, 1)}
	w := NewWidget(r)
	w.Open()

	errc := make(chan error, 1)
	go func() {
		_, err := w.Send(context.Background(), "first")
		errc <- err
	}()

	<-r.entered
	assert.Equal(t, StateSending, w.State())
	assert.Nil(t, w.QuickReplies())

	_, err := w.Send(context.Background(), "second")
	assert.ErrorIs(t, err, ErrWidgetBusy)

	close(r.block)
	require.NoError(t, <-errc)
	assert.Equal(t, StateAwaitingInput, w.State())
}

func TestWidget_WithFallbackSelector(t *testing.T) {
	w := NewWidget(New(Config{}))
	w.Open()

	bot, err := w.Send(context.Background(), "How does matching work?")
	require.NoError(t, err)
	_, want := Fallback("matching")
	assert.Equal(t, want, bot.Text)
	assert.False(t, bot.Arabic)
}

func TestWidget_LanguageStaysArabicAfterEnglishTurn(t *testing.T) {
	stub := &stubResponder{reply: "أهلاً"}
	w := NewWidget(stub)
	w.Open()

	_, err := w.Send(context.Background(), "مرحبا")
	require.NoError(t, err)

	stub.reply = "Sure, here is how to apply."
	_, err = w.Send(context.Background(), "how do I apply?")
	require.NoError(t, err)

	msgs := w.Messages()
	assert.False(t, msgs[len(msgs)-1].Arabic)
	assert.Equal(t, Arabic, w.Language(), "the preference is not recomputed from the last message")
	assert.Equal(t, "rtl", w.Language().Direction())
}
