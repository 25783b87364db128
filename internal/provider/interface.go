package provider

// Options carries per-invocation knobs for command generation.
type Options struct {
	// Model overrides the provider's configured default when non-empty.
	Model string
	// Debug emits the outgoing prompt and model to stderr before the call.
	Debug bool
}

// Provider defines the interface that all AI backends must implement.
type Provider interface {
	// DisplayName returns the human-readable provider name for prompts.
	DisplayName() string

	// DefaultModel returns the model used when no override is given.
	DefaultModel() string

	// ValidateCredentials makes a minimal live call proving the credentials
	// work. Failures wrap ErrInvalidCredentials when the backend rejects the
	// credentials and ErrBackend (or ErrTimeout) for everything else.
	ValidateCredentials() error

	// GenerateCommand converts a natural language question into a single
	// terminal command. Blank backend output wraps ErrEmptyResult.
	GenerateCommand(question, systemInfo string, opts Options) (string, error)
}

// Credentials is the provider-specific credential value handed to a
// constructor: a single secret string for cloud providers, or a small
// settings map (url, model) for local-endpoint providers. Never log the
// secret directly; use MaskSecret for display.
type Credentials struct {
	Secret   string
	Settings map[string]string
}

// Empty reports whether no credential material is present.
func (c Credentials) Empty() bool {
	return c.Secret == "" && len(c.Settings) == 0
}

// Descriptor is the static per-provider record: where its credentials live
// and what it defaults to. A provider is settings-based (url/model map)
// when DefaultURL is non-empty, secret-based otherwise.
type Descriptor struct {
	Name           string
	DisplayName    string
	DefaultModel   string
	EnvVar         string
	KeyringService string
	KeyringAccount string
	DefaultURL     string
}

// SettingsBased reports whether credentials are a settings map rather than
// a single secret.
func (d Descriptor) SettingsBased() bool {
	return d.DefaultURL != ""
}

const maskedPlaceholder = "***"

// MaskSecret returns the display form of a secret. Secrets longer than 12
// characters keep the first 8 and last 4; anything shorter collapses to a
// fixed mask. Lengths count code points so a multibyte secret is never cut
// mid-rune. This is the only place secrets are formatted for display.
func MaskSecret(secret string) string {
	runes := []rune(secret)
	if len(runes) > 12 {
		return string(runes[:8]) + "..." + string(runes[len(runes)-4:])
	}
	return maskedPlaceholder
}
