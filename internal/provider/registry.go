package provider

import "strings"

// Constructor builds a provider instance bound to one set of credentials.
// Constructors must not perform I/O.
type Constructor func(Credentials) (Provider, error)

// SetupFunc runs the provider's interactive setup dialogue. It collects and
// live-tests credentials, returning them together with a bound instance.
// defaults holds the provider's existing non-secret settings, used to
// pre-fill prompts. A user abort propagates as an error; nothing is
// persisted by the setup itself.
type SetupFunc func(defaults map[string]string) (Credentials, Provider, error)

// Registration ties a provider identity to its descriptor, constructor and
// interactive setup.
type Registration struct {
	Descriptor Descriptor
	New        Constructor
	Setup      SetupFunc
}

// Registry maps provider identities to registrations. It is built once at
// process start and passed to the commands that need it; there is no
// package-level registry state.
type Registry struct {
	order   []string
	entries map[string]Registration
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Registration)}
}

// Register adds a provider under its descriptor name. Names are
// case-insensitive. Re-registering an existing name silently replaces the
// previous entry (last registration wins) while keeping its original
// position in the registration order.
func (r *Registry) Register(reg Registration) {
	name := strings.ToLower(reg.Descriptor.Name)
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = reg
}

// Names returns the registered identities in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Lookup returns the registration for name, matching case-insensitively.
func (r *Registry) Lookup(name string) (Registration, error) {
	reg, ok := r.entries[strings.ToLower(name)]
	if !ok {
		return Registration{}, &UnsupportedError{Name: name, Available: r.Names()}
	}
	return reg, nil
}

// Create builds a provider instance for name bound to creds.
func (r *Registry) Create(name string, creds Credentials) (Provider, error) {
	reg, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return reg.New(creds)
}
