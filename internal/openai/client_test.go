package openai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-cli/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(provider.Credentials{Secret: "sk-test-key-1234567890"})
	require.NoError(t, err)
	c := p.(*Client)
	c.BaseURL = srv.URL
	return c
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(provider.Credentials{})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrInvalidCredentials)

	_, err = New(provider.Credentials{Secret: "   "})
	assert.ErrorIs(t, err, provider.ErrInvalidCredentials)
}

func TestValidateCredentialsOK(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test-key-1234567890", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": "gpt-4.1-nano"}, {"id": "gpt-4o-mini"}},
		})
	}))

	assert.NoError(t, c.ValidateCredentials())
}

func TestValidateCredentialsUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Incorrect API key provided"}}`))
	}))

	err := c.ValidateCredentials()
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, provider.ErrBackend)
}

func TestValidateCredentialsAuthHintInBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "authentication failed for this key"}}`))
	}))

	err := c.ValidateCredentials()
	assert.ErrorIs(t, err, provider.ErrInvalidCredentials)
}

func TestValidateCredentialsServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	}))

	err := c.ValidateCredentials()
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrBackend)
	assert.NotErrorIs(t, err, provider.ErrInvalidCredentials)
}

func chatResponse(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}
}

func TestGenerateCommand(t *testing.T) {
	var got ChatRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		chatResponse("du -sh .")(w, r)
	}))

	command, err := c.GenerateCommand("show disk usage", "Linux", provider.Options{})
	require.NoError(t, err)
	assert.Equal(t, "du -sh .", command)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Linux")
	assert.Equal(t, "show disk usage", got.Messages[1].Content)
	assert.Equal(t, DefaultModel, got.Model)
}

func TestGenerateCommandModelOverride(t *testing.T) {
	var got ChatRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		chatResponse("ls")(w, r)
	}))

	_, err := c.GenerateCommand("list files", "Linux", provider.Options{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", got.Model)
}

func TestGenerateCommandStripsFormatting(t *testing.T) {
	c := newTestClient(t, chatResponse("```sh\nfind . -name \"*.py\" -type f\n```"))

	command, err := c.GenerateCommand("find python files", "Linux", provider.Options{})
	require.NoError(t, err)
	assert.Equal(t, `find . -name "*.py" -type f`, command)
}

func TestGenerateCommandEmptyResponse(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t\n"} {
		c := newTestClient(t, chatResponse(content))

		_, err := c.GenerateCommand("show disk usage", "Linux", provider.Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, provider.ErrEmptyResult)
	}
}

func TestGenerateCommandNoChoices(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))

	_, err := c.GenerateCommand("show disk usage", "Linux", provider.Options{})
	assert.ErrorIs(t, err, provider.ErrBackend)
}

func TestGenerateCommandMalformedPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	_, err := c.GenerateCommand("show disk usage", "Linux", provider.Options{})
	assert.ErrorIs(t, err, provider.ErrBackend)
}
