package commands

import (
	"github.com/spf13/cobra"

	"github.com/debmagic/debmagic/internal/config"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/pkg/client"
)

// Shell attaches an interactive shell to the running build of the package
// in the source directory.
func Shell(logger logging.Logger, cfg *config.Config, newClient ClientFactory) *cobra.Command {
	var sourceDir string

	cmd := &cobra.Command{
		Use:   "shell",
		Args:  cobra.NoArgs,
		Short: "Open a shell in the environment of a running build",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			debmagicClient, err := newClient(*cfg)
			if err != nil {
				return err
			}

			return debmagicClient.Shell(commandContext(cmd), client.ShellOptions{
				SourceDir:    sourceDir,
				TempBuildDir: cfg.TempBuildDir,
			})
		}),
	}

	cmd.Flags().StringVarP(&sourceDir, "source-dir", "s", ".", "Path to the package source directory")
	AddHelpFlag(cmd, "shell")
	return cmd
}
