// Package chat is the client side of the assistant: an ordered transcript
// for one dialog and the HTTP client that talks to the gateway.
package chat

import (
	"context"
	"encoding/json"
	"errors"
)

type Sender string

const (
	SenderUser    Sender = "You"
	SenderBot     Sender = "Bot"
	SenderOffline Sender = "Nutri-AI (offline)"
)

// Message is one transcript entry. Entries are never edited once appended.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// Answer is the reply appended for one Send call.
type Answer struct {
	Message  Message
	Degraded bool
	Note     string
}

var ErrEmptyMessage = errors.New("chat: empty message")

// Asker sends one utterance to the gateway.
type Asker interface {
	Ask(ctx context.Context, message string, plan json.RawMessage) (Reply, error)
}

// TranscriptStore keeps transcripts in append order, keyed by dialog id.
type TranscriptStore interface {
	Append(ctx context.Context, dialogID string, msg Message) error
	Load(ctx context.Context, dialogID string) ([]Message, error)
	Clear(ctx context.Context, dialogID string) error
}
