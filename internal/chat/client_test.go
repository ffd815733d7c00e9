package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vovarama1992/nutri-ai-gateway/internal/nutrition"
)

type stubProvider struct {
	reply string
	err   error
}

func (p stubProvider) GetReply(context.Context, string, string) (string, error) {
	return p.reply, p.err
}

func newGatewayServer(t *testing.T, p stubProvider) *httptest.Server {
	t.Helper()
	g := nutrition.New(p, nutrition.Settings{APIKey: "sk-test", MaxContextBytes: 1024}, quietLogger())
	h := nutrition.NewHandler(g, nil, nutrition.HandlerOptions{ProviderTimeout: time.Second}, quietLogger())
	server := httptest.NewServer(nutrition.NewRouter(h))
	t.Cleanup(server.Close)
	return server
}

func TestClient_AskAgainstGateway(t *testing.T) {
	server := newGatewayServer(t, stubProvider{reply: "Oats are a solid breakfast."})
	c := NewClient(server.URL+"/nutrition-ai", 5*time.Second)

	reply, err := c.Ask(context.Background(), "breakfast ideas", json.RawMessage(`{"items":["oats"]}`))
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply.Text != "Oats are a solid breakfast." || reply.Fallback || !reply.Success {
		t.Fatalf("unexpected reply %+v", reply)
	}
}

func TestClient_AskDegradedGateway(t *testing.T) {
	server := newGatewayServer(t, stubProvider{err: errors.New("boom")})
	c := NewClient(server.URL+"/nutrition-ai", 5*time.Second)

	reply, err := c.Ask(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if !reply.Fallback || reply.Note == "" {
		t.Fatalf("expected fallback reply, got %+v", reply)
	}
	if reply.Text != nutrition.Fallback("hello", false) {
		t.Errorf("unexpected fallback text %q", reply.Text)
	}
}

func TestClient_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Ask(context.Background(), "hi", nil)
	if err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestClient_EmptyReplyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"","success":true}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Ask(context.Background(), "hi", nil)
	if err == nil {
		t.Fatal("expected error for empty reply")
	}
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	_, err := NewClient(server.URL, 50*time.Millisecond).Ask(context.Background(), "hi", nil)
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestSession_EndToEndOffline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL + "/nutrition-ai"
	server.Close()

	s := NewSession("", NewClient(url, time.Second), NewMemoryStore(), quietLogger())
	ans, err := s.Send(context.Background(), "meal plan", nil)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if ans.Message.Sender != SenderOffline {
		t.Fatalf("expected offline reply, got %+v", ans)
	}
}
