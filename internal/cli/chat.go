package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/futureintern/platform/internal/chatbot"
	"github.com/futureintern/platform/internal/gateway"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// remoteResponder answers through the server's chatbot endpoint and falls
// back to the canned answers when the server cannot be reached.
type remoteResponder struct {
	chat *gateway.ChatbotService
	log  zerolog.Logger
}

func (r remoteResponder) Respond(ctx context.Context, message string, history []chatbot.Message) chatbot.Reply {
	reply, err := r.chat.Send(ctx, message, chatTurns(history)...)
	if err != nil || reply == nil || strings.TrimSpace(reply.Response) == "" {
		r.log.Warn().Err(err).Msg("chatbot endpoint failed, using local fallback")
		topic, text := chatbot.Fallback(message)
		return chatbot.Reply{
			Text:   text,
			Source: chatbot.SourceFallback,
			Topic:  topic,
			Arabic: chatbot.ContainsArabic(message),
			Err:    err,
		}
	}
	return chatbot.Reply{
		Text:   reply.Response,
		Source: chatbot.Source(reply.Source),
		Topic:  chatbot.Topic(reply.Topic),
		Arabic: reply.IsArabic,
	}
}

func chatTurns(history []chatbot.Message) []gateway.ChatTurn {
	turns := make([]gateway.ChatTurn, 0, len(history))
	for _, m := range history {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		turns = append(turns, gateway.ChatTurn{Text: m.Text, Sender: string(m.Sender)})
	}
	return turns
}

func (a *App) responder(remote bool) chatbot.Responder {
	log := a.log.With().Str("component", "chatbot").Logger()
	if remote {
		return remoteResponder{chat: a.client.Chatbot, log: log}
	}
	return chatbot.New(chatbot.Config{
		APIKey:  a.settings.OpenAI.APIKey,
		APIURL:  a.settings.OpenAI.APIURL,
		Model:   a.settings.OpenAI.Model,
		Timeout: a.settings.Timeout,
	}, chatbot.WithLogger(log))
}

func (a *App) chatCmd() *cobra.Command {
	var (
		message string
		remote  bool
		faq     bool
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the FutureIntern assistant",
		Long: `Open an interactive chat with the assistant. Answers come from the
language model when openai.api_key is configured and from built-in answers
otherwise. The language model answers Arabic questions in Arabic; the
built-in answers are in English.

Type a number to pick a suggested question, or /quit to leave.

Examples:
  futureintern chat
  futureintern chat --message "How do I apply?"
  futureintern chat --remote
  futureintern chat --faq`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if faq {
				faqs := chatbot.FAQs()
				if a.jsonOut() {
					return printJSON(out, faqs)
				}
				for _, f := range faqs {
					fmt.Fprintf(out, "* %s\n", f.Question)
				}
				return nil
			}

			w := chatbot.NewWidget(a.responder(remote))
			w.Open()
			defer w.Close()

			if message != "" {
				reply, err := w.Send(cmd.Context(), message)
				if err != nil {
					return err
				}
				if a.jsonOut() {
					return printJSON(out, reply)
				}
				fmt.Fprintln(out, reply.Text)
				return nil
			}

			return chatLoop(cmd.Context(), w, cmd.InOrStdin(), out)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "send one message and print the answer")
	cmd.Flags().BoolVar(&remote, "remote", false, "answer through the server instead of locally")
	cmd.Flags().BoolVar(&faq, "faq", false, "list the built-in help topics")
	return cmd
}

// chatLoop runs the widget until /quit or end of input.
func chatLoop(ctx context.Context, w *chatbot.Widget, in io.Reader, out io.Writer) error {
	for _, m := range w.Messages() {
		printChatMessage(out, m)
	}
	suggestions := printSuggestions(out, w)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}
		if n, err := strconv.Atoi(text); err == nil && n >= 1 && n <= len(suggestions) {
			text = suggestions[n-1]
			fmt.Fprintf(out, "  %s\n", text)
		}

		reply, err := w.Send(ctx, text)
		if err != nil {
			return err
		}
		printChatMessage(out, reply)
		suggestions = printSuggestions(out, w)
	}
}

func printChatMessage(out io.Writer, m chatbot.Message) {
	who := "You"
	if m.Sender == chatbot.SenderBot {
		who = "Assistant"
	}
	fmt.Fprintf(out, "\n%s [%s]:\n%s\n\n", who, m.Timestamp.Format("15:04"), m.Text)
}

func printSuggestions(out io.Writer, w *chatbot.Widget) []string {
	replies := w.QuickReplies()
	for i, r := range replies {
		fmt.Fprintf(out, "  %d) %s\n", i+1, r)
	}
	return replies
}
