package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const recordTimeout = 5 * time.Second

type Handler struct {
	gw              Responder
	recorder        Recorder
	providerTimeout time.Duration
	maxBodyBytes    int64
	log             *slog.Logger
}

// HandlerOptions bound the work done per request.
type HandlerOptions struct {
	ProviderTimeout time.Duration
	MaxBodyBytes    int64
}

func NewHandler(gw Responder, recorder Recorder, opts HandlerOptions, logger *slog.Logger) *Handler {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = 25 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		gw:              gw,
		recorder:        recorder,
		providerTimeout: opts.ProviderTimeout,
		maxBodyBytes:    opts.MaxBodyBytes,
		log:             logger.With("component", "handler"),
	}
}

type assistantPayload struct {
	Message     string          `json:"message"`
	GroceryPlan json.RawMessage `json:"groceryPlan"`
}

// envelope is the wire response. Degraded answers still use HTTP 200;
// clients look at Fallback instead of the status code.
type envelope struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Fallback bool   `json:"fallback,omitempty"`
	Note     string `json:"note,omitempty"`
}

// HandleAssistant answers POST /nutrition-ai.
func (h *Handler) HandleAssistant(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var payload assistantPayload
	var resp Response

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Warn("invalid request body", "error", err)
		resp = internalFailure("invalid request body")
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), h.providerTimeout)
		resp = h.gw.Respond(ctx, Request{
			Message: payload.Message,
			Context: payload.GroceryPlan,
		})
		cancel()
	}

	h.record(r.Context(), payload, resp, time.Since(started))

	writeJSON(w, http.StatusOK, toEnvelope(resp))
}

// HandlePreflight answers OPTIONS with an empty body. The CORS middleware
// has already set the headers for real preflights; bare OPTIONS requests
// get the permissive set here.
func (h *Handler) HandlePreflight(w http.ResponseWriter, _ *http.Request) {
	hdr := w.Header()
	if hdr.Get("Access-Control-Allow-Origin") == "" {
		hdr.Set("Access-Control-Allow-Origin", "*")
		hdr.Set("Access-Control-Allow-Headers", allowedHeadersValue)
		hdr.Set("Access-Control-Allow-Methods", allowedMethodsValue)
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) record(ctx context.Context, payload assistantPayload, resp Response, latency time.Duration) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	ex := &Exchange{
		ID:           uuid.New(),
		Message:      payload.Message,
		ContextBytes: len(payload.GroceryPlan),
		Response:     resp.Text,
		Degraded:     resp.Degraded,
		Failure:      resp.Failure,
		Diagnostic:   resp.Diagnostic,
		Latency:      latency,
	}
	if err := h.recorder.SaveExchange(ctx, ex); err != nil {
		h.log.Error("failed to record exchange", "exchange_id", ex.ID, "error", err)
	}
}

func toEnvelope(resp Response) envelope {
	env := envelope{Response: resp.Text, Success: true}
	if resp.Degraded {
		env.Fallback = true
		env.Note = note(resp)
	}
	return env
}

func note(resp Response) string {
	diag := resp.Diagnostic
	if diag == "" {
		diag = "Unknown error"
	}
	switch resp.Failure {
	case FailureInternal:
		return "Returned generic fallback due to error: " + diag
	case FailureInput:
		return "Returned fallback due to input error: " + diag
	case FailureConfig:
		return "Returned fallback due to configuration error: " + diag
	default:
		return fmt.Sprintf("Returned fallback due to AI error: %s", diag)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
