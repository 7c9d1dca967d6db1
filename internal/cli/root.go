// Package cli implements testgen-cli, which drives the builder from YAML
// procedure files
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/kode4food/testgen"
	"github.com/kode4food/testgen/internal/clipboard"
	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/internal/ticket"
	"github.com/kode4food/testgen/pkg/log"
)

type (
	// Dependencies are the outside services the commands talk to. A nil
	// ClipboardSupported assumes a clipboard is present
	Dependencies struct {
		NewTicket          func(*config.Config) (ticket.Client, error)
		Copier             clipboard.Copier
		ClipboardSupported func() bool
	}

	runner struct {
		cfg  *config.Config
		deps *Dependencies
	}
)

// DefaultDependencies uses the configured ticket client and the system
// clipboard
func DefaultDependencies() *Dependencies {
	return &Dependencies{
		NewTicket:          ticket.NewFromConfig,
		Copier:             clipboard.System{},
		ClipboardSupported: clipboard.Supported,
	}
}

// Execute runs the root command against os.Args
func Execute() error {
	return NewRootCommand(DefaultDependencies()).Execute()
}

// NewRootCommand builds the command tree. Flag defaults come from the same
// environment variables the server reads
func NewRootCommand(deps *Dependencies) *cobra.Command {
	cfg := config.NewDefaultConfig()
	envErr := cfg.LoadFromEnv()
	r := &runner{cfg: cfg, deps: deps}

	root := &cobra.Command{
		Use:          "testgen-cli",
		Short:        "Build test procedures from the step catalog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envErr != nil {
				return envErr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			r.setupLogging(cmd)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Catalog.URL, "catalog-url", cfg.Catalog.URL,
		"bucket or HTTP URL holding the catalog resources")
	flags.StringVar(&cfg.Catalog.StepsKey, "steps-key", cfg.Catalog.StepsKey,
		"resource key of the step list")
	flags.StringVar(&cfg.Catalog.ParametersKey, "parameters-key",
		cfg.Catalog.ParametersKey, "resource key of the parameter list")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"log level (debug, info, warn, error)")

	root.AddCommand(r.versionCommand())
	root.AddCommand(r.catalogCommand())
	root.AddCommand(r.buildCommand())
	return root
}

func (r *runner) setupLogging(cmd *cobra.Command) {
	level, _ := log.ParseLevel(r.cfg.LogLevel)
	logger := log.NewWithWriter(
		cmd.ErrOrStderr(), app.Name, os.Getenv("ENV"), app.Version, level,
	)
	slog.SetDefault(logger)
}

func (r *runner) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.Name, app.Version)
		},
	}
}
