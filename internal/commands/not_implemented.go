package commands

import (
	"github.com/spf13/cobra"

	"github.com/debmagic/debmagic/internal/logging"
)

// Test will run the package's test suite.
func Test(logger logging.Logger) *cobra.Command {
	return notImplemented(logger, "test", "Run the package tests")
}

// Check will lint the package source.
func Check(logger logging.Logger) *cobra.Command {
	return notImplemented(logger, "check", "Check the package source for problems")
}

func notImplemented(logger logging.Logger, name, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Args:  cobra.NoArgs,
		Short: short,
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			logger.Infof("%s: not implemented", name)
			return nil
		}),
	}
	AddHelpFlag(cmd, name)
	return cmd
}
