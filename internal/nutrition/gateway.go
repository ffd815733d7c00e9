package nutrition

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/Vovarama1992/nutri-ai-gateway/internal/ai"
)

const missingCredential = "provider credential not configured"

// Settings are fixed at construction; the gateway never reads the
// environment itself.
type Settings struct {
	APIKey          string
	MaxContextBytes int
}

// Gateway mediates between chat clients and the model provider. It holds no
// mutable state and is safe for concurrent use.
type Gateway struct {
	provider   ai.AI
	apiKey     string
	maxContext int
	log        *slog.Logger
}

func New(provider ai.AI, settings Settings, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		provider:   provider,
		apiKey:     strings.TrimSpace(settings.APIKey),
		maxContext: settings.MaxContextBytes,
		log:        logger.With("component", "gateway"),
	}
}

// outcome is the result of asking the provider: either text or a failure.
type outcome struct {
	text       string
	kind       FailureKind
	reason     string
	message    string
	hasContext bool
}

// Respond always returns a usable response. Provider failures are turned
// into keyword fallbacks; any panic becomes the generic fallback.
func (g *Gateway) Respond(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("recovered from fault while responding",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			resp = finish(outcome{kind: FailureInternal, reason: "internal error"})
		}
	}()

	out := g.ask(ctx, req)
	if out.kind != FailureNone {
		g.log.Warn("returning fallback",
			"failure", string(out.kind),
			"reason", out.reason,
			"has_context", out.hasContext,
		)
	}
	return finish(out)
}

func (g *Gateway) ask(ctx context.Context, req Request) outcome {
	if strings.TrimSpace(req.Message) == "" {
		return outcome{kind: FailureInput, reason: "empty message"}
	}

	plan, problem := normalizeContext(req.Context, g.maxContext)
	if problem != "" {
		g.log.Warn("grocery plan dropped", "reason", problem, "bytes", len(req.Context))
	}

	out := outcome{message: req.Message, hasContext: plan != nil}

	if g.provider == nil || g.apiKey == "" {
		out.kind = FailureConfig
		out.reason = missingCredential
		return out
	}

	reply, err := g.provider.GetReply(ctx, BuildSystemPrompt(plan), req.Message)
	if err != nil {
		out.kind = FailureTransport
		if ai.IsProtocolError(err) {
			out.kind = FailureProtocol
		}
		out.reason = ai.Reason(err)
		return out
	}

	out.text = reply
	return out
}

// finish is the only place degraded text is produced.
func finish(out outcome) Response {
	if out.kind == FailureNone {
		return Response{Text: out.text}
	}

	var text string
	switch out.kind {
	case FailureInput:
		text = inputInvitation
	case FailureInternal:
		text = GenericFallback()
	default:
		text = Fallback(out.message, out.hasContext)
	}

	return Response{
		Text:       text,
		Degraded:   true,
		Diagnostic: out.reason,
		Failure:    out.kind,
	}
}

// internalFailure is used by callers that fail before reaching the gateway,
// such as an undecodable request body.
func internalFailure(reason string) Response {
	return finish(outcome{kind: FailureInternal, reason: reason})
}
