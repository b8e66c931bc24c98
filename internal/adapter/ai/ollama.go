// Package ai holds the Ollama fix requester: it turns one failing run
// into a single non-streaming generate request and extracts a candidate
// fix from the free-text response.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/core"
)

const (
	defaultOllamaURL     = "http://localhost:11434/api/generate"
	defaultOllamaTimeout = 120 * time.Second
	defaultTemperature   = 0.2
)

// OllamaAdapter implements core.FixRequester against Ollama's generate API.
type OllamaAdapter struct {
	model       string
	endpoint    string
	temperature float64
	client      *http.Client
}

var _ core.FixRequester = (*OllamaAdapter)(nil)

// NewOllama creates a new OllamaAdapter from the AI config.
func NewOllama(cfg config.AIConfig) (*OllamaAdapter, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama: model is required")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultOllamaURL
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultOllamaTimeout
	}

	return &OllamaAdapter{
		model:       cfg.Model,
		endpoint:    endpoint,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

// RequestFix sends the code, diagnostics, and user request to Ollama and
// returns the extracted candidate source. A transport or parse fault is
// returned as an error; the caller treats it as "no fix this iteration".
func (a *OllamaAdapter) RequestFix(ctx context.Context, req core.FixRequest) (string, error) {
	prompt := buildPrompt(req)

	body, err := a.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("ollama: request fix: %w", err)
	}

	return ExtractCode(body, req.Language.FenceTag), nil
}

// generateRequest is the Ollama generate API request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

// generateOptions controls model behavior.
type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

// generateResponse is the non-streaming response from Ollama.
type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// generate posts a prompt to Ollama and returns the raw response text.
func (a *OllamaAdapter) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:   a.model,
		Prompt:  prompt,
		Stream:  false,
		Options: generateOptions{Temperature: a.temperature},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return "", fmt.Errorf("cannot connect to ollama at %s (is Ollama running?): %w", a.endpoint, err)
		}
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(respData))
	}

	var apiResp generateResponse
	if err := json.Unmarshal(respData, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if apiResp.Error != "" {
		return "", fmt.Errorf("api error: %s", apiResp.Error)
	}

	if strings.TrimSpace(apiResp.Response) == "" {
		return "", fmt.Errorf("empty response")
	}

	return apiResp.Response, nil
}

func isConnectionRefused(err error) bool {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return false
	}

	msg := strings.ToLower(urlErr.Err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "actively refused") ||
		strings.Contains(msg, "cannot assign requested address")
}
