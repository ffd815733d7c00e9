package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Vovarama1992/nutri-ai-gateway/internal/nutrition"
)

// Session is one open dialog. It is meant to be driven by a single
// goroutine, the one owning the UI.
type Session struct {
	id     string
	client Asker
	store  TranscriptStore
	log    *slog.Logger
}

// NewSession opens dialogID, or a fresh dialog when dialogID is empty.
func NewSession(dialogID string, client Asker, store TranscriptStore, logger *slog.Logger) *Session {
	if dialogID == "" {
		dialogID = uuid.NewString()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		id:     dialogID,
		client: client,
		store:  store,
		log:    logger.With("component", "chat", "dialog_id", dialogID),
	}
}

func (s *Session) ID() string { return s.id }

// Send appends the user's text and exactly one reply. When the gateway
// cannot be reached the reply is built locally from the same tip rules.
func (s *Session) Send(ctx context.Context, text string, plan json.RawMessage) (Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Answer{}, ErrEmptyMessage
	}

	if err := s.store.Append(ctx, s.id, Message{Sender: SenderUser, Text: text}); err != nil {
		return Answer{}, fmt.Errorf("append user message: %w", err)
	}

	ans := s.ask(ctx, text, plan)

	if err := s.store.Append(ctx, s.id, ans.Message); err != nil {
		return ans, fmt.Errorf("append reply: %w", err)
	}
	return ans, nil
}

func (s *Session) ask(ctx context.Context, text string, plan json.RawMessage) Answer {
	if s.client != nil {
		reply, err := s.client.Ask(ctx, text, plan)
		if err == nil {
			if reply.Fallback {
				s.log.Info("gateway answered with fallback", "note", reply.Note)
			}
			return Answer{
				Message:  Message{Sender: SenderBot, Text: reply.Text},
				Degraded: reply.Fallback,
				Note:     reply.Note,
			}
		}
		s.log.Warn("gateway unavailable, answering locally", "error", err)
	}

	return Answer{
		Message:  Message{Sender: SenderOffline, Text: nutrition.Fallback(text, hasPlan(plan))},
		Degraded: true,
		Note:     "gateway unavailable",
	}
}

// Transcript returns the dialog in append order.
func (s *Session) Transcript(ctx context.Context) ([]Message, error) {
	return s.store.Load(ctx, s.id)
}

// Close drops the dialog's transcript.
func (s *Session) Close(ctx context.Context) error {
	return s.store.Clear(ctx, s.id)
}

func hasPlan(plan json.RawMessage) bool {
	p := bytes.TrimSpace(plan)
	return len(p) > 0 && !bytes.Equal(p, []byte("null"))
}
