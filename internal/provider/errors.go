package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds shared by all providers. Implementations wrap these with
// fmt.Errorf("...: %w", ...) so callers can branch with errors.Is.
var (
	// ErrInvalidCredentials marks credentials the backend rejected or that
	// are malformed. Never retried; fatal at query time.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrBackend marks transport failures and unexpected response shapes.
	ErrBackend = errors.New("backend error")

	// ErrTimeout marks an I/O deadline expiring, distinct from refusal.
	ErrTimeout = errors.New("request timed out")

	// ErrEmptyResult marks a blank command returned by the backend.
	ErrEmptyResult = errors.New("empty command returned")
)

// NotFoundError is returned when no source in the precedence chain yields
// credentials for a provider. The message names the remediation.
type NotFoundError struct {
	Provider string
	EnvVar   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s credentials configured. Run 'ai setup' to configure the provider, or set the %s environment variable",
		e.Provider, e.EnvVar)
}

// InvalidConfigError is returned when an environment credential value is
// present but cannot be parsed. There is no further fallback level, so this
// is a hard error rather than a silent miss.
type InvalidConfigError struct {
	EnvVar string
	Err    error
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration format in %s: %v", e.EnvVar, e.Err)
}

func (e *InvalidConfigError) Unwrap() error { return e.Err }

// UnsupportedError is returned for a registry lookup miss. Available holds
// the registered identities in registration order.
type UnsupportedError struct {
	Name      string
	Available []string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported provider '%s'. Available providers: %s",
		e.Name, strings.Join(e.Available, ", "))
}
