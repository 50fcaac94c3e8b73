package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultChatURL is the OpenAI-compatible chat completions base URL.
	DefaultChatURL = "https://api.openai.com/v1"

	// DefaultChatModel is the planner model.
	DefaultChatModel = "gpt-4o-mini"

	// Environment variables
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvBaseURL = "OPENAI_BASE_URL"
	EnvModel   = "OPENAI_CHAT_MODEL"
)

// ErrNotConfigured indicates no chat API credentials are available.
var ErrNotConfigured = errors.New("chat API not configured")

// ChatClient sends a system+user prompt pair and returns the assistant
// reply. The planner treats every call as best-effort.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// APIClient talks to an OpenAI-compatible chat completions endpoint.
type APIClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	httpClient *http.Client
}

// NewAPIClientFromEnv builds a chat client from environment variables.
// Returns ErrNotConfigured when no API key is set.
func NewAPIClientFromEnv() (*APIClient, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}

	return &APIClient{
		BaseURL:    getEnvOr(EnvBaseURL, DefaultChatURL),
		APIKey:     key,
		Model:      getEnvOr(EnvModel, DefaultChatModel),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// NewAPIClientFromConfig builds a chat client from explicit base URL and
// model, filling gaps from the environment. The API key always comes from
// the environment, never from configuration. Returns ErrNotConfigured
// when no key is set.
func NewAPIClientFromConfig(baseURL, model string) (*APIClient, error) {
	key := os.Getenv(EnvAPIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}
	if baseURL == "" {
		baseURL = getEnvOr(EnvBaseURL, DefaultChatURL)
	}
	if model == "" {
		model = getEnvOr(EnvModel, DefaultChatModel)
	}
	return NewAPIClient(baseURL, key, model), nil
}

// NewAPIClient builds a chat client with explicit settings.
func NewAPIClient(baseURL, apiKey, model string) *APIClient {
	if baseURL == "" {
		baseURL = DefaultChatURL
	}
	if model == "" {
		model = DefaultChatModel
	}
	return &APIClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat sends a non-streaming chat completion request.
func (c *APIClient) Chat(ctx context.Context, system, user string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.Model,
		"messages": []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		"temperature": 0.2,
		"stream":      false,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("chat api returned no choices")
	}

	return apiResp.Choices[0].Message.Content, nil
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
