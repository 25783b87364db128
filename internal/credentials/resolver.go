// Package credentials resolves provider credentials through the layered
// precedence chain: secret store, then settings file, then environment.
// The chain is an ordered list of sources rather than nested fallbacks, so
// the precedence is data and each source is testable on its own.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ai-cli/internal/config"
	"ai-cli/internal/provider"
	"ai-cli/internal/secret"
)

// Source is one level of the precedence chain. Lookup returns found=false
// for a clean miss; an error is reserved for values that are present but
// unusable with no further fallback.
type Source interface {
	Name() string
	Lookup(desc provider.Descriptor) (creds provider.Credentials, found bool, err error)
}

// softError marks a source failure that still has fallback levels below
// it: Resolve treats it as a miss, Inspect reports it.
type softError struct{ err error }

func (e softError) Error() string { return e.err.Error() }
func (e softError) Unwrap() error { return e.err }

// Resolver walks its sources in order until one yields credentials.
type Resolver struct {
	sources []Source
}

// NewResolver builds the standard chain over the given stores.
func NewResolver(store secret.Store, cfg *config.Store) *Resolver {
	return &Resolver{sources: []Source{
		&KeyringSource{Store: store},
		&ConfigSource{Config: cfg},
		EnvSource{},
	}}
}

// NewResolverWith builds a resolver over an explicit source list, in
// precedence order.
func NewResolverWith(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Resolve produces the credentials for desc, or a NotFoundError naming the
// remediation when every source misses.
func (r *Resolver) Resolve(desc provider.Descriptor) (provider.Credentials, error) {
	for _, src := range r.sources {
		creds, found, err := src.Lookup(desc)
		if err != nil {
			var soft softError
			if errors.As(err, &soft) {
				continue
			}
			return provider.Credentials{}, err
		}
		if found {
			return creds, nil
		}
	}
	return provider.Credentials{}, &provider.NotFoundError{
		Provider: desc.DisplayName,
		EnvVar:   desc.EnvVar,
	}
}

// Presence reports one source's state for status display. Creds carries
// the raw value; callers mask at the formatting boundary.
type Presence struct {
	Source string
	Found  bool
	Creds  provider.Credentials
	Err    error
}

// Inspect reports every source's state for desc without resolving. Hard
// errors (e.g. a malformed environment value) are captured per source
// rather than aborting the report.
func (r *Resolver) Inspect(desc provider.Descriptor) []Presence {
	report := make([]Presence, 0, len(r.sources))
	for _, src := range r.sources {
		creds, found, err := src.Lookup(desc)
		var soft softError
		if errors.As(err, &soft) {
			err = soft.err
		}
		report = append(report, Presence{
			Source: src.Name(),
			Found:  found,
			Creds:  creds,
			Err:    err,
		})
	}
	return report
}

// KeyringSource reads the platform secret store. Store failures are soft:
// keyring unavailability is expected on some platforms and must never
// block the fallback chain, but the status report still names it.
type KeyringSource struct {
	Store secret.Store
}

func (s *KeyringSource) Name() string { return "keyring" }

func (s *KeyringSource) Lookup(desc provider.Descriptor) (provider.Credentials, bool, error) {
	value, err := s.Store.Get(desc.KeyringService, desc.KeyringAccount)
	if err != nil {
		return provider.Credentials{}, false, softError{fmt.Errorf("keyring not available: %w", err)}
	}
	if value == "" {
		return provider.Credentials{}, false, nil
	}

	if !desc.SettingsBased() {
		return provider.Credentials{Secret: value}, true, nil
	}

	settings, perr := parseSettings(value)
	if perr != nil {
		// An unreadable stored value still has two fallback levels below it.
		return provider.Credentials{}, false, softError{fmt.Errorf("stored keyring value is not valid JSON: %w", perr)}
	}
	return provider.Credentials{Settings: settings}, true, nil
}

// ConfigSource reads the provider's own section of the settings file. Only
// settings-based providers keep credentials there; secrets never appear in
// the file.
type ConfigSource struct {
	Config *config.Store
}

func (s *ConfigSource) Name() string { return "config file" }

func (s *ConfigSource) Lookup(desc provider.Descriptor) (provider.Credentials, bool, error) {
	if !desc.SettingsBased() {
		return provider.Credentials{}, false, nil
	}

	settings, err := s.Config.ProviderSettings(desc.Name)
	if err != nil || settings["url"] == "" || settings["model"] == "" {
		return provider.Credentials{}, false, nil
	}
	return provider.Credentials{Settings: settings}, true, nil
}

// EnvSource reads the provider's environment variable. For settings-based
// providers the value is a serialized JSON object; a parse failure here is
// a hard error because environment is the last fallback level.
type EnvSource struct{}

func (EnvSource) Name() string { return "environment" }

func (EnvSource) Lookup(desc provider.Descriptor) (provider.Credentials, bool, error) {
	value := os.Getenv(desc.EnvVar)
	if value == "" {
		return provider.Credentials{}, false, nil
	}

	if !desc.SettingsBased() {
		return provider.Credentials{Secret: value}, true, nil
	}

	settings, err := parseSettings(value)
	if err != nil {
		return provider.Credentials{}, false, &provider.InvalidConfigError{EnvVar: desc.EnvVar, Err: err}
	}
	return provider.Credentials{Settings: settings}, true, nil
}

func parseSettings(value string) (map[string]string, error) {
	settings := map[string]string{}
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
