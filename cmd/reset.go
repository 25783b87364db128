package cmd

import (
	"fmt"
	"os"
	"strings"

	"ai-cli/internal/config"
	"ai-cli/internal/provider"
	"ai-cli/internal/secret"
	"ai-cli/internal/ui"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove stored credentials and configuration",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	fmt.Println("🗑️  AI CLI Reset")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	cfg, err := config.NewStore()
	if err != nil {
		return err
	}
	return resetFlow(cfg, secret.NewKeyring(), newRegistry(), ui.Confirm)
}

// resetFlow sweeps stored credentials and the settings file over explicit
// stores. An empty state is a no-op with no prompt and no deletes.
func resetFlow(cfg *config.Store, store secret.Store, registry *provider.Registry, confirm func(string) (bool, error)) error {
	anything := cfg.Exists()
	for _, name := range registry.Names() {
		entry, _ := registry.Lookup(name)
		desc := entry.Descriptor
		if value, gerr := store.Get(desc.KeyringService, desc.KeyringAccount); gerr == nil && value != "" {
			anything = true
		}
	}

	if !anything {
		fmt.Println("No configuration found.")
		return nil
	}

	fmt.Println("⚠️  This will remove all stored credentials and the settings file.")
	ok, err := confirm("Are you sure?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Reset cancelled.")
		return nil
	}

	// Individual removal failures are reported but never abort the sweep.
	for _, name := range registry.Names() {
		entry, _ := registry.Lookup(name)
		desc := entry.Descriptor
		if derr := store.Delete(desc.KeyringService, desc.KeyringAccount); derr != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Could not remove %s credentials: %v\n", desc.DisplayName, derr)
		}
	}
	if rerr := cfg.Remove(); rerr != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Could not remove the settings file: %v\n", rerr)
	}

	fmt.Println("✅ Reset complete.")
	return nil
}
