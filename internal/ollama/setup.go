package ollama

import (
	"fmt"

	"ai-cli/internal/provider"
	"ai-cli/internal/ui"
)

// SetupInteractive collects and live-tests an Ollama URL/model pair.
// defaults carries the provider's existing settings-file values, used to
// pre-fill the prompts. The caller stores the returned credentials.
func SetupInteractive(defaults map[string]string) (provider.Credentials, provider.Provider, error) {
	fmt.Println("Setting up Ollama provider.")
	fmt.Println()

	defaultURL := defaults["url"]
	if defaultURL == "" {
		defaultURL = DefaultURL
	}
	defaultModel := defaults["model"]
	if defaultModel == "" {
		defaultModel = DefaultModel
	}

	url, err := ui.Input("Ollama API URL:", DefaultURL, defaultURL)
	if err != nil {
		return provider.Credentials{}, nil, err
	}
	if url == "" {
		url = defaultURL
	}

	model, err := ui.Input("Model to use:", DefaultModel, defaultModel)
	if err != nil {
		return provider.Credentials{}, nil, err
	}
	if model == "" {
		model = defaultModel
	}

	creds := provider.Credentials{Settings: map[string]string{
		"url":   url,
		"model": model,
	}}
	inst, err := New(creds)
	if err != nil {
		return provider.Credentials{}, nil, err
	}

	fmt.Println()
	err = ui.ShowSpinner("Testing Ollama configuration...", inst.ValidateCredentials)
	if err == nil {
		fmt.Println("✅ Ollama configuration is valid!")
	} else {
		fmt.Printf("❌ Configuration test failed: %v\n", err)
		ok, cerr := ui.Confirm("Store the configuration anyway?")
		if cerr != nil {
			return provider.Credentials{}, nil, cerr
		}
		if !ok {
			return provider.Credentials{}, nil, ui.ErrAborted
		}
	}

	return creds, inst, nil
}
