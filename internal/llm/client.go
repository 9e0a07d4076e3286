// Package llm turns a holiday occurrence into greeting text via an
// OpenAI-compatible chat endpoint, and owns the response-shape extraction
// and text cleanup that makes arbitrary provider output usable.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"festbot/internal/holiday"
	"festbot/pkg/logx"
)

type Config struct {
	// BaseURL of an OpenAI-compatible API, e.g. "https://api.openai.com/v1".
	BaseURL string
	Model   string
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string
}

// Request carries everything the generator may use for one greeting.
type Request struct {
	Occurrence holiday.Payload
	Style      string
	// ChatContext is free-text context about the destination chat.
	ChatContext string
}

// Client calls the chat completion endpoint directly over HTTP: the
// extraction pipeline needs the raw response document, which SDK clients
// flatten away. No per-call timeout; the caller bounds failures by retry
// count instead.
type Client struct {
	cfg  Config
	log  logx.Logger
	http *http.Client
}

func New(cfg Config, log logx.Logger) *Client {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Client{cfg: cfg, log: log, http: &http.Client{}}
}

// Configured reports whether a provider endpoint is set at all.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.cfg.BaseURL) != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if !c.Configured() {
		return "", errors.New("no provider configured")
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: BuildSystemPrompt(req.Style)},
			{Role: "user", Content: BuildPrompt(req.Occurrence, req.Style, req.ChatContext)},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if env := strings.TrimSpace(c.cfg.APIKeyEnv); env != "" {
		if key := os.Getenv(env); key != "" {
			httpReq.Header.Set("Authorization", "Bearer "+key)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("completion failed: http=%d", resp.StatusCode)
	}

	text := ExtractText(payload)
	if text == "" {
		return "", errors.New("completion contained no usable text")
	}
	return text, nil
}
