package chat

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
)

// Reply mirrors the gateway's response envelope.
type Reply struct {
	Text     string `json:"response"`
	Success  bool   `json:"success"`
	Fallback bool   `json:"fallback"`
	Note     string `json:"note"`
}

type Client struct {
	url    string
	client *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Ask(ctx context.Context, message string, plan json.RawMessage) (Reply, error) {
	b, err := json.Marshal(map[string]any{
		"message":     message,
		"groceryPlan": plan,
	})
	if err != nil {
		return Reply{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.url,
		bytes.NewReader(b),
	)
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Reply{}, errors.New(
			"gateway error: " +
				resp.Status +
				" body=" + strings.TrimSpace(string(respBody)),
		)
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("decode gateway reply: %w", err)
	}
	if strings.TrimSpace(reply.Text) == "" {
		return Reply{}, errors.New("gateway reply has no text")
	}

	return reply, nil
}
