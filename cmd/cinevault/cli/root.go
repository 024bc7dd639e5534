// Package cli holds the cinevault command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo is stamped into the binary at build time
type VersionInfo struct {
	Version string
	Commit  string
}

// NewRootCommand returns the root command. Run without a subcommand it
// behaves like serve.
func NewRootCommand(info VersionInfo) *cobra.Command {
	var (
		path     string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:           "cinevault",
		Short:         "Film catalog API",
		Long:          "cinevault serves a film catalog with genres, people, credits, curator reviews and user comments.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(path, logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), false)
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}
