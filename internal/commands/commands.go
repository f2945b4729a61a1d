package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/debmagic/debmagic/internal/config"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/pkg/client"
)

//go:generate mockgen -package testmocks -destination testmocks/mock_debmagic_client.go github.com/debmagic/debmagic/internal/commands DebmagicClient
type DebmagicClient interface {
	Build(context.Context, client.BuildOptions) (client.BuildResult, error)
	Shell(context.Context, client.ShellOptions) error
}

// ClientFactory creates the client a command runs against. It is called
// once the configuration has been merged with the command's flags.
type ClientFactory func(cfg config.Config) (DebmagicClient, error)

func AddHelpFlag(cmd *cobra.Command, commandName string) {
	cmd.Flags().BoolP("help", "h", false, fmt.Sprintf("Help for '%s'", commandName))
}

// CreateCancellableContext returns a context that is cancelled on SIGINT or
// SIGTERM.
func CreateCancellableContext() context.Context {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-signals
		cancel()
	}()

	return ctx
}

func logError(logger logging.Logger, f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true
		cmd.SilenceUsage = true
		err := f(cmd, args)
		if err != nil {
			logger.Error(err.Error())
			return err
		}
		return nil
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
