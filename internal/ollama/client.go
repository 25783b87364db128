package ollama

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"ai-cli/internal/prompt"
	"ai-cli/internal/provider"
)

const (
	DefaultURL   = "http://localhost:11434/api/generate"
	DefaultModel = "llama2"

	validateTimeout = 10 * time.Second
	generateTimeout = 30 * time.Second
)

// Descriptor is the static record for the Ollama provider. Credentials are
// a {url, model} settings map rather than a secret.
var Descriptor = provider.Descriptor{
	Name:           "ollama",
	DisplayName:    "Ollama",
	DefaultModel:   DefaultModel,
	EnvVar:         "OLLAMA_CONFIG",
	KeyringService: "ai-cli",
	KeyringAccount: "ollama-config",
	DefaultURL:     DefaultURL,
}

// Client is the local-endpoint provider, bound to one URL/model pair.
type Client struct {
	URL    string
	Model  string
	Client *http.Client
}

type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// New builds a client from a {url, model} settings map. Both fields are
// required. No I/O happens here.
func New(creds provider.Credentials) (provider.Provider, error) {
	url := strings.TrimSpace(creds.Settings["url"])
	model := strings.TrimSpace(creds.Settings["model"])
	if url == "" {
		return nil, fmt.Errorf("ollama: API URL required: %w", provider.ErrInvalidCredentials)
	}
	if model == "" {
		return nil, fmt.Errorf("ollama: model required: %w", provider.ErrInvalidCredentials)
	}
	return &Client{
		URL:   url,
		Model: model,
		Client: &http.Client{
			Timeout: generateTimeout,
		},
	}, nil
}

func (c *Client) DisplayName() string {
	return "Ollama"
}

func (c *Client) DefaultModel() string {
	return c.Model
}

// ValidateCredentials issues a minimal generate request. A 404 naming the
// model means the model is not installed and an unreachable endpoint means
// the URL is misconfigured; both classify as invalid credentials. Anything
// else is a backend error.
func (c *Client) ValidateCredentials() error {
	client := &http.Client{Timeout: validateTimeout}
	resp, err := c.post(client, GenerateRequest{Model: c.Model, Prompt: "test", Stream: false})
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("ollama: %w", provider.ErrTimeout)
		}
		return fmt.Errorf("ollama: could not connect to %s (is Ollama running?): %w", c.URL, provider.ErrInvalidCredentials)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound && strings.Contains(strings.ToLower(string(body)), "model") {
		return fmt.Errorf("ollama: model '%s' not found, make sure it is installed: %w", c.Model, provider.ErrInvalidCredentials)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: unexpected status code %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), provider.ErrBackend)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return fmt.Errorf("ollama: invalid JSON response: %w", provider.ErrBackend)
	}
	if genResp.Response == "" && !genResp.Done {
		return fmt.Errorf("ollama: unexpected response format: %w", provider.ErrBackend)
	}

	return nil
}

// GenerateCommand issues exactly one generate call. opts.Model overrides
// the configured model for this call only.
func (c *Client) GenerateCommand(question, systemInfo string, opts provider.Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.Model
	}

	fullPrompt := prompt.CompletionPrompt(systemInfo, question)

	if opts.Debug {
		debugRequest(c.URL, model, fullPrompt)
	}

	resp, err := c.post(c.Client, GenerateRequest{Model: model, Prompt: fullPrompt, Stream: false})
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("ollama: %w", provider.ErrTimeout)
		}
		return "", fmt.Errorf("ollama: could not connect to %s (is Ollama running?): %w", c.URL, provider.ErrBackend)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama: unexpected status code %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), provider.ErrBackend)
	}

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("ollama: failed to decode response: %v: %w", err, provider.ErrBackend)
	}

	command := prompt.ExtractCommand(genResp.Response)
	if command == "" {
		return "", fmt.Errorf("ollama: %w", provider.ErrEmptyResult)
	}

	return command, nil
}

func (c *Client) post(client *http.Client, reqBody GenerateRequest) (*http.Response, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return client.Do(req)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func debugRequest(url, model, fullPrompt string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintln(os.Stderr, "🔍 DEBUG: Ollama API Request")
	fmt.Fprintln(os.Stderr, rule)
	fmt.Fprintf(os.Stderr, "URL: %s\n", url)
	fmt.Fprintf(os.Stderr, "Model: %s\n", model)
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 50))
	fmt.Fprintln(os.Stderr, "Prompt:")
	fmt.Fprintln(os.Stderr, fullPrompt)
	fmt.Fprintln(os.Stderr, rule)
	fmt.Fprintln(os.Stderr)
}
