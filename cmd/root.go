package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ai-cli/internal/clipboard"
	"ai-cli/internal/config"
	"ai-cli/internal/credentials"
	"ai-cli/internal/ollama"
	"ai-cli/internal/openai"
	"ai-cli/internal/provider"
	"ai-cli/internal/secret"
	"ai-cli/internal/shell"
	"ai-cli/internal/sysinfo"
	"ai-cli/internal/ui"

	"github.com/spf13/cobra"
)

const (
	version         = "0.3.0"
	defaultProvider = "openai"
)

var (
	copyFlag     bool
	execFlag     bool
	debugFlag    bool
	providerFlag string
	modelFlag    string
)

var rootCmd = &cobra.Command{
	Use:     "ai [question...]",
	Short:   "Convert natural language questions into terminal commands",
	Long:    `AI CLI turns a natural language question into a single shell command using a configurable AI backend, and optionally copies or executes the result.`,
	Args:    cobra.ArbitraryArgs,
	Version: version,
	RunE:    runQuery,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// newRegistry builds the provider registry. It is constructed here at
// process start and handed to the commands that need it.
func newRegistry() *provider.Registry {
	r := provider.NewRegistry()
	r.Register(provider.Registration{
		Descriptor: openai.Descriptor,
		New:        openai.New,
		Setup:      openai.SetupInteractive,
	})
	r.Register(provider.Registration{
		Descriptor: ollama.Descriptor,
		New:        ollama.New,
		Setup:      ollama.SetupInteractive,
	})
	return r
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "Operation cancelled.")
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&copyFlag, "copy", "c", false, "copy the command to the clipboard")
	rootCmd.Flags().BoolVarP(&execFlag, "exec", "e", false, "execute the generated command in your shell")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "show the full request sent to the backend")
	rootCmd.Flags().StringVar(&providerFlag, "provider", "", "AI provider to use for this query")
	rootCmd.Flags().StringVar(&modelFlag, "model", "", "model to use for this query")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ai-cli version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ai version %s\n", version)
	},
}

func runQuery(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Help()
		os.Exit(1)
	}
	question := strings.Join(args, " ")

	cfg, err := config.NewStore()
	if err != nil {
		return err
	}
	registry := newRegistry()

	name := providerFlag
	if name == "" {
		name, err = cfg.Provider()
		if err != nil {
			return err
		}
	}
	if name == "" {
		name = defaultProvider
	}

	entry, err := registry.Lookup(name)
	if err != nil {
		return err
	}

	resolver := credentials.NewResolver(secret.NewKeyring(), cfg)
	creds, err := resolver.Resolve(entry.Descriptor)
	if err != nil {
		return err
	}

	p, err := entry.New(creds)
	if err != nil {
		return err
	}

	systemInfo, err := sysinfo.Collect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Could not gather system information: %v\n", err)
		systemInfo = sysinfo.Unknown
	}

	opts := provider.Options{Model: modelFlag, Debug: debugFlag}

	var command string
	if debugFlag {
		// No spinner in debug mode; the request dump owns stderr.
		command, err = p.GenerateCommand(question, systemInfo, opts)
	} else {
		err = ui.ShowSpinner("Generating command...", func() error {
			var genErr error
			command, genErr = p.GenerateCommand(question, systemInfo, opts)
			return genErr
		})
	}
	if err != nil {
		return err
	}

	fmt.Println(command)

	if copyFlag {
		if cerr := clipboard.Copy(command); cerr != nil {
			fmt.Fprintln(os.Stderr, "❌ Could not copy to clipboard. Please copy the command manually.")
		} else {
			fmt.Fprintln(os.Stderr, "✅ Command copied to clipboard! Paste and press Enter to execute.")
		}
	}

	if execFlag {
		return shell.Run(command)
	}

	return nil
}
