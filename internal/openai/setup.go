package openai

import (
	"fmt"
	"strings"

	"ai-cli/internal/provider"
	"ai-cli/internal/ui"
)

// SetupInteractive collects and live-tests an OpenAI API key. The caller is
// responsible for storing the returned credentials; nothing is persisted
// here, so an abort at any prompt leaves no partial state behind.
func SetupInteractive(_ map[string]string) (provider.Credentials, provider.Provider, error) {
	fmt.Println("Please enter your OpenAI API key.")
	fmt.Println("You can find your API key at: https://platform.openai.com/api-keys")
	fmt.Println()

	for {
		apiKey, err := ui.SecretInput("OpenAI API Key:")
		if err != nil {
			return provider.Credentials{}, nil, err
		}

		if apiKey == "" {
			fmt.Println("❌ API key cannot be empty. Please try again.")
			continue
		}

		if len(apiKey) < MinKeyLength {
			fmt.Printf("⚠️  Warning: API key too short (minimum %d characters)\n", MinKeyLength)
			ok, err := ui.Confirm("Continue anyway?")
			if err != nil {
				return provider.Credentials{}, nil, err
			}
			if !ok {
				continue
			}
		}

		if !strings.HasPrefix(apiKey, KeyPrefix) {
			fmt.Printf("⚠️  Warning: API key should start with '%s'\n", KeyPrefix)
			ok, err := ui.Confirm("Continue anyway?")
			if err != nil {
				return provider.Credentials{}, nil, err
			}
			if !ok {
				continue
			}
		}

		creds := provider.Credentials{Secret: apiKey}
		inst, err := New(creds)
		if err != nil {
			return provider.Credentials{}, nil, err
		}

		fmt.Println()
		err = ui.ShowSpinner("Testing API key...", inst.ValidateCredentials)
		if err == nil {
			fmt.Println("✅ API key is valid!")
		} else {
			fmt.Printf("❌ API key test failed: %v\n", err)
			ok, cerr := ui.Confirm("Store the key anyway?")
			if cerr != nil {
				return provider.Credentials{}, nil, cerr
			}
			if !ok {
				return provider.Credentials{}, nil, ui.ErrAborted
			}
		}

		return creds, inst, nil
	}
}
