package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAIClient builds a provider client from explicit settings. An empty
// baseURL keeps the library default endpoint.
func NewOpenAIClient(apiKey, model, baseURL string, logger *slog.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    logger.With("component", "ai"),
	}
}

// GetReply sends one system + user exchange and returns the completion text.
// No temperature is sent: the configured model tier rejects it.
func (c *OpenAIClient) GetReply(
	ctx context.Context,
	systemPrompt string,
	userText string,
) (string, error) {

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userText},
		},
		MaxCompletionTokens: MaxCompletionTokens,
	})
	if err != nil {
		c.log.Warn("provider call failed", "model", c.model, "error", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log.Warn("provider returned no choices", "model", c.model)
		return "", ErrMalformedResponse
	}

	raw := resp.Choices[0].Message.Content
	if strings.TrimSpace(raw) == "" {
		c.log.Warn("provider returned empty content", "model", c.model, "finish_reason", resp.Choices[0].FinishReason)
		return "", ErrMalformedResponse
	}

	c.log.Debug("provider reply",
		"model", c.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"reply", short(raw),
	)

	return raw, nil
}

func short(s string) string {
	r := []rune(s)
	if len(r) > 180 {
		return string(r[:180]) + "..."
	}
	return s
}
