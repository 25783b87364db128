// Package secret wraps the platform secret store behind a minimal
// service+account interface so callers and tests never depend on the OS
// keyring directly.
package secret

import (
	"errors"
	"fmt"
	"time"

	"github.com/zalando/go-keyring"

	"ai-cli/internal/provider"
)

// Store is the secret store contract. Get returns "" with a nil error for
// an absent entry; Delete of an absent entry is not an error.
type Store interface {
	Get(service, account string) (string, error)
	Set(service, account, value string) error
	Delete(service, account string) error
}

// callTimeout bounds every secret store call. The platform daemon can hang
// (a wedged dbus secrets service, a locked keychain waiting on a prompt
// that never renders) and nothing above this layer may block on it.
const callTimeout = 10 * time.Second

// NewKeyring returns the OS keyring implementation with every call bounded
// by callTimeout.
func NewKeyring() Store {
	return WithTimeout(osKeyring{}, callTimeout)
}

type osKeyring struct{}

func (osKeyring) Get(service, account string) (string, error) {
	value, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("keyring get failed: %w", err)
	}
	return value, nil
}

func (osKeyring) Set(service, account, value string) error {
	if err := keyring.Set(service, account, value); err != nil {
		return fmt.Errorf("keyring set failed: %w", err)
	}
	return nil
}

func (osKeyring) Delete(service, account string) error {
	err := keyring.Delete(service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete failed: %w", err)
	}
	return nil
}

// WithTimeout wraps a store so that every call gives up after the given
// duration. An expired call fails with an error wrapping ErrTimeout; the
// abandoned goroutine is left to finish on its own.
func WithTimeout(inner Store, timeout time.Duration) Store {
	return &timeoutStore{inner: inner, timeout: timeout}
}

type timeoutStore struct {
	inner   Store
	timeout time.Duration
}

func (s *timeoutStore) Get(service, account string) (string, error) {
	var value string
	err := s.call(func() error {
		var gerr error
		value, gerr = s.inner.Get(service, account)
		return gerr
	})
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *timeoutStore) Set(service, account, value string) error {
	return s.call(func() error { return s.inner.Set(service, account, value) })
}

func (s *timeoutStore) Delete(service, account string) error {
	return s.call(func() error { return s.inner.Delete(service, account) })
}

func (s *timeoutStore) call(fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("secret store did not respond within %s: %w", s.timeout, provider.ErrTimeout)
	}
}
