package cmd

import (
	"fmt"
	"sort"
	"strings"

	"ai-cli/internal/config"
	"ai-cli/internal/credentials"
	"ai-cli/internal/provider"
	"ai-cli/internal/secret"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 AI CLI Status")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	cfg, err := config.NewStore()
	if err != nil {
		return err
	}
	registry := newRegistry()
	resolver := credentials.NewResolver(secret.NewKeyring(), cfg)

	selected, err := cfg.Provider()
	if err != nil {
		return err
	}
	if selected == "" {
		fmt.Printf("Selected provider: %s (default)\n", defaultProvider)
	} else {
		fmt.Printf("Selected provider: %s\n", selected)
	}
	if cfg.Exists() {
		fmt.Printf("Settings file: %s\n", cfg.Path())
	} else {
		fmt.Println("Settings file: not created")
	}
	fmt.Println()

	active := selected
	if active == "" {
		active = defaultProvider
	}

	ready := false
	for _, name := range registry.Names() {
		entry, _ := registry.Lookup(name)
		desc := entry.Descriptor

		fmt.Printf("%s:\n", desc.DisplayName)
		found := false
		for _, p := range resolver.Inspect(desc) {
			switch {
			case p.Err != nil:
				fmt.Printf("  ⚠️  %s: %v\n", p.Source, p.Err)
			case p.Found:
				fmt.Printf("  ✅ %s: %s\n", p.Source, displayCredentials(p.Creds))
				found = true
			default:
				fmt.Printf("  ❌ %s: not set\n", p.Source)
			}
		}
		fmt.Println()

		if found && name == active {
			ready = true
		}
	}

	if ready {
		fmt.Println("✅ AI CLI is ready to use!")
	} else {
		fmt.Println("❌ No credentials configured for the selected provider. Run 'ai setup' to get started.")
	}
	return nil
}

// displayCredentials renders credentials for the status report. Secrets go
// through the masking boundary; settings are non-secret and shown as-is.
func displayCredentials(creds provider.Credentials) string {
	if creds.Secret != "" {
		return provider.MaskSecret(creds.Secret)
	}

	keys := make([]string, 0, len(creds.Settings))
	for key := range creds.Settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, creds.Settings[key]))
	}
	return strings.Join(pairs, " ")
}
