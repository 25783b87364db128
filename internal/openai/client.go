package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"ai-cli/internal/prompt"
	"ai-cli/internal/provider"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4.1-nano-2025-04-14"

	KeyPrefix    = "sk-"
	MinKeyLength = 20

	validateTimeout = 10 * time.Second
	generateTimeout = 30 * time.Second
)

// Descriptor is the static record for the OpenAI provider.
var Descriptor = provider.Descriptor{
	Name:           "openai",
	DisplayName:    "OpenAI",
	DefaultModel:   DefaultModel,
	EnvVar:         "OPENAI_API_KEY",
	KeyringService: "ai-cli",
	KeyringAccount: "openai-api-key",
}

// Client is the secret-key provider. It is bound to one API key for the
// lifetime of a single invocation.
type Client struct {
	BaseURL string
	Client  *http.Client
	apiKey  string
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

type ModelsResponse struct {
	Data []struct {
		ID      string `json:"id"`
		OwnedBy string `json:"owned_by"`
	} `json:"data"`
}

// New builds a client bound to the given secret. No I/O happens here.
func New(creds provider.Credentials) (provider.Provider, error) {
	if strings.TrimSpace(creds.Secret) == "" {
		return nil, fmt.Errorf("openai: API key required: %w", provider.ErrInvalidCredentials)
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		Client: &http.Client{
			Timeout: generateTimeout,
		},
		apiKey: strings.TrimSpace(creds.Secret),
	}, nil
}

func (c *Client) DisplayName() string {
	return "OpenAI"
}

func (c *Client) DefaultModel() string {
	return DefaultModel
}

// ValidateCredentials lists models as a cheap liveness probe. Responses
// carrying authentication hints classify as invalid credentials; anything
// else is a backend error.
func (c *Client) ValidateCredentials() error {
	url := fmt.Sprintf("%s/models", c.BaseURL)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.attachAuth(req)

	client := &http.Client{Timeout: validateTimeout}
	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("openai: %w", provider.ErrTimeout)
		}
		return fmt.Errorf("openai: failed to connect to API server: %v: %w", err, provider.ErrBackend)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if isAuthFailure(resp.StatusCode, string(body)) {
			return fmt.Errorf("openai: API rejected the key (status %d): %w", resp.StatusCode, provider.ErrInvalidCredentials)
		}
		return fmt.Errorf("openai: unexpected status code %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), provider.ErrBackend)
	}

	return nil
}

// GenerateCommand issues exactly one chat completion call and extracts a
// single command line from the response.
func (c *Client) GenerateCommand(question, systemInfo string, opts provider.Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.DefaultModel()
	}

	messages := []ChatMessage{
		{
			Role:    "system",
			Content: prompt.SystemPrompt(systemInfo),
		},
		{
			Role:    "user",
			Content: question,
		},
	}

	if opts.Debug {
		debugConversation(messages, model)
	}

	reqBody := ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.BaseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	c.attachAuth(req)

	resp, err := c.Client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("openai: %w", provider.ErrTimeout)
		}
		return "", fmt.Errorf("openai: failed to send request: %v: %w", err, provider.ErrBackend)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if isAuthFailure(resp.StatusCode, string(body)) {
			return "", fmt.Errorf("openai: API rejected the key (status %d): %w", resp.StatusCode, provider.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("openai: unexpected status code %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), provider.ErrBackend)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("openai: failed to decode response: %v: %w", err, provider.ErrBackend)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: response contained no choices: %w", provider.ErrBackend)
	}

	command := prompt.ExtractCommand(chatResp.Choices[0].Message.Content)
	if command == "" {
		return "", fmt.Errorf("openai: %w", provider.ErrEmptyResult)
	}

	return command, nil
}

func (c *Client) attachAuth(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var authHints = []string{"authentication", "unauthorized", "invalid api key", "incorrect api key"}

func isAuthFailure(status int, body string) bool {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return true
	}
	lower := strings.ToLower(body)
	for _, hint := range authHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
