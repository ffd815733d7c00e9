package nutrition

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request is one user turn. Context is an optional grocery-plan snapshot.
type Request struct {
	Message string
	Context json.RawMessage
}

// Response is what the gateway returns for every request. Degraded marks a
// locally generated answer; Diagnostic is for logs and notes only.
type Response struct {
	Text       string
	Degraded   bool
	Diagnostic string
	Failure    FailureKind
}

// FailureKind says why a response was degraded.
type FailureKind string

const (
	FailureNone      FailureKind = ""
	FailureInput     FailureKind = "input"
	FailureConfig    FailureKind = "config"
	FailureTransport FailureKind = "transport"
	FailureProtocol  FailureKind = "protocol"
	FailureInternal  FailureKind = "internal"
)

// Responder answers assistant requests. It never fails.
type Responder interface {
	Respond(ctx context.Context, req Request) Response
}

// Exchange is one answered request, kept for observability.
type Exchange struct {
	ID           uuid.UUID
	Message      string
	ContextBytes int
	Response     string
	Degraded     bool
	Failure      FailureKind
	Diagnostic   string
	Latency      time.Duration
}

// Recorder persists exchanges. The gateway never reads them back.
type Recorder interface {
	SaveExchange(ctx context.Context, ex *Exchange) error
}

// Repo is the persistent Recorder.
type Repo interface {
	Recorder
	EnsureSchema(ctx context.Context) error
}

type nopRecorder struct{}

func (nopRecorder) SaveExchange(context.Context, *Exchange) error { return nil }
