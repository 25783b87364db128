package cmd

import (
	"fmt"
	"os"
	"strings"

	"ai-cli/internal/config"
	"ai-cli/internal/credentials"
	"ai-cli/internal/provider"
	"ai-cli/internal/secret"
	"ai-cli/internal/ui"

	"github.com/spf13/cobra"
)

var setupProviderFlag string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure an AI provider",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupProviderFlag, "provider", "", "provider to configure (skips the picker)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println("🔧 AI CLI Setup")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	cfg, err := config.NewStore()
	if err != nil {
		return err
	}
	return setupFlow(cfg, secret.NewKeyring(), newRegistry(), setupProviderFlag, ui.Confirm)
}

// setupFlow runs the setup dialogue over explicit stores. All writes
// happen after the dialogue returns, so an abort at any prompt leaves the
// keyring and the settings file untouched.
func setupFlow(cfg *config.Store, store secret.Store, registry *provider.Registry, name string, confirm func(string) (bool, error)) error {
	var err error
	if name == "" {
		choices := make([]ui.Choice, 0, len(registry.Names()))
		for _, n := range registry.Names() {
			entry, _ := registry.Lookup(n)
			choices = append(choices, ui.Choice{
				Name:        entry.Descriptor.Name,
				Description: entry.Descriptor.DisplayName,
			})
		}
		current, _ := cfg.Provider()
		name, err = ui.Select("Select AI Provider", choices, current)
		if err != nil {
			return err
		}
		fmt.Println()
	}

	entry, err := registry.Lookup(name)
	if err != nil {
		return err
	}
	desc := entry.Descriptor

	resolver := credentials.NewResolver(store, cfg)
	if existing, rerr := resolver.Resolve(desc); rerr == nil && !existing.Empty() {
		fmt.Printf("✅ %s is already configured.\n", desc.DisplayName)
		ok, cerr := confirm("Would you like to update it?")
		if cerr != nil {
			return cerr
		}
		if !ok {
			fmt.Println("Setup cancelled.")
			return nil
		}
		fmt.Println()
	}

	defaults, err := cfg.ProviderSettings(desc.Name)
	if err != nil {
		return err
	}

	// The setup dialogue collects and tests credentials but writes nothing;
	// every interactive confirmation happens before the first write below.
	creds, _, err := entry.Setup(defaults)
	if err != nil {
		return err
	}

	if desc.SettingsBased() {
		if err := cfg.SetProviderSettings(desc.Name, creds.Settings); err != nil {
			return err
		}
		fmt.Println("✅ Configuration stored in the settings file!")
	} else {
		fmt.Println()
		fmt.Println("💾 Storing API key securely...")
		if err := store.Set(desc.KeyringService, desc.KeyringAccount, creds.Secret); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Could not store the key in the system keyring: %v\n", err)
			fmt.Fprintf(os.Stderr, "You can still use the %s environment variable as a fallback.\n", desc.EnvVar)
		} else {
			fmt.Println("✅ API key stored securely in system keyring!")
		}
	}

	if err := cfg.SetProvider(desc.Name); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("🎉 Setup complete! You can now use the 'ai' command.")
	fmt.Println("Example: ai 'list all python files'")
	return nil
}
