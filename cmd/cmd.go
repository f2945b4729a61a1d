package cmd

import (
	"github.com/heroku/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/debmagic/debmagic/internal/commands"
	"github.com/debmagic/debmagic/internal/config"
	"github.com/debmagic/debmagic/internal/driver"
	"github.com/debmagic/debmagic/internal/driver/bare"
	"github.com/debmagic/debmagic/internal/driver/docker"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/pkg/client"
)

// ConfigurableLogger defines behavior required by the DebmagicCommand
type ConfigurableLogger interface {
	logging.Logger
	WantTime(f bool)
	WantQuiet(f bool)
	WantVerbose(f bool)
}

// NewDebmagicCommand generates a Debmagic command
func NewDebmagicCommand(logger ConfigurableLogger) *cobra.Command {
	cobra.EnableCommandSorting = false

	var (
		cfg        config.Config
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "debmagic",
		Short: "Build Debian packages on the host or in a container",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if fs := cmd.Flags(); fs != nil {
				if flag, err := fs.GetBool("no-color"); err == nil {
					color.Disable(flag)
				}
				if flag, err := fs.GetBool("quiet"); err == nil {
					logger.WantQuiet(flag)
				}
				if flag, err := fs.GetBool("verbose"); err == nil {
					logger.WantVerbose(flag)
				}
				if flag, err := fs.GetBool("timestamps"); err == nil {
					logger.WantTime(flag)
				}
			}

			loaded, err := config.Load(configPath)
			if err != nil {
				cmd.SilenceUsage = true
				return errors.Wrap(err, "loading debmagic config")
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file read on top of "+config.DefaultPath())
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable color output")
	rootCmd.PersistentFlags().Bool("timestamps", false, "Enable timestamps in output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Show less output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show more output")
	rootCmd.Flags().Bool("version", false, "Show current 'debmagic' version")

	commands.AddHelpFlag(rootCmd, "debmagic")

	newClient := func(c config.Config) (commands.DebmagicClient, error) {
		return initClient(logger, c)
	}

	rootCmd.AddCommand(commands.Build(logger, &cfg, newClient))
	rootCmd.AddCommand(commands.Shell(logger, &cfg, newClient))
	rootCmd.AddCommand(commands.Test(logger))
	rootCmd.AddCommand(commands.Check(logger))
	rootCmd.AddCommand(commands.Version(logger, Version))

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{.Version}}{{"\n"}}`)
	rootCmd.SetOut(logging.GetWriterForLevel(logger, logging.InfoLevel))
	rootCmd.SetErr(logging.GetWriterForLevel(logger, logging.ErrorLevel))

	return rootCmd
}

func initClient(logger logging.Logger, cfg config.Config) (*client.Client, error) {
	return client.NewClient(
		client.WithLogger(logger),
		client.WithDriverOptions(driverOptions(cfg)),
		client.WithAttachPollInterval(cfg.AttachPollInterval.Duration),
		client.WithAttachMaxWait(cfg.AttachMaxWait.Duration),
	)
}

func driverOptions(cfg config.Config) driver.Options {
	return driver.Options{
		Bare: bare.Options{
			PrivilegeWrapper: cfg.Driver.Bare.PrivilegeWrapper,
			Shell:            cfg.Driver.Bare.Shell,
		},
		Docker: docker.Options{
			BaseImage:  cfg.Driver.Docker.BaseImage,
			MountPath:  cfg.Driver.Docker.MountPath,
			User:       cfg.Driver.Docker.User,
			Persistent: cfg.Driver.Persistent,
		},
	}
}
