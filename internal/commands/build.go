package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/config"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/style"
	"github.com/debmagic/debmagic/pkg/client"
)

type BuildFlags struct {
	Driver          build.DriverType
	DockerBaseImage string
	Persistent      bool
	SourceDir       string
	OutputDir       string
	DryRun          bool
	Sign            bool
}

// Build builds the Debian source package in the source directory.
func Build(logger logging.Logger, cfg *config.Config, newClient ClientFactory) *cobra.Command {
	var flags BuildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Args:  cobra.NoArgs,
		Short: "Build a Debian package from its source directory",
		Example: "debmagic build --driver docker\n" +
			"debmagic build -d bare -s ./hello -o ./out --dry-run",
		RunE: logError(logger, func(cmd *cobra.Command, args []string) error {
			buildCfg := applyBuildFlags(*cfg, flags, cmd.Flags().Changed("persistent"))

			debmagicClient, err := newClient(buildCfg)
			if err != nil {
				return err
			}

			result, err := debmagicClient.Build(commandContext(cmd), client.BuildOptions{
				Driver:        flags.Driver,
				SourceDir:     flags.SourceDir,
				OutputDir:     flags.OutputDir,
				TempBuildDir:  buildCfg.TempBuildDir,
				Distro:        buildCfg.Distro,
				DistroVersion: buildCfg.DistroVersion,
				DryRun:        buildCfg.DryRun,
				Sign:          flags.Sign,
			})
			if err != nil {
				return err
			}

			if buildCfg.DryRun {
				logger.Infof("Dry run of %s finished", style.Symbol(result.Config.PackageIdentifier))
				return nil
			}
			logger.Infof("Successfully built %s", style.Symbol(result.Config.PackageIdentifier))
			for _, artifact := range result.Artifacts {
				logger.Infof("  %s", filepath.Base(artifact))
			}
			return nil
		}),
	}

	cmd.Flags().VarP(&flags.Driver, "driver", "d", "Build driver, one of "+driverChoices())
	cmd.Flags().StringVar(&flags.DockerBaseImage, "docker-base-image", "", "Base image of the docker build container (defaults to docker.io/<distro>:<distro-version>)")
	cmd.Flags().BoolVar(&flags.Persistent, "persistent", false, "Keep the build container around between builds")
	cmd.Flags().StringVarP(&flags.SourceDir, "source-dir", "s", ".", "Path to the package source directory")
	cmd.Flags().StringVarP(&flags.OutputDir, "output-dir", "o", ".", "Directory the built packages are written to")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the commands instead of running them")
	cmd.Flags().BoolVar(&flags.Sign, "sign", false, "Sign the built package")
	_ = cmd.MarkFlagRequired("driver")
	AddHelpFlag(cmd, "build")
	return cmd
}

// applyBuildFlags layers the build flags over the loaded configuration. An
// explicit --persistent=false turns off persistence enabled in the config.
func applyBuildFlags(cfg config.Config, flags BuildFlags, persistentSet bool) config.Config {
	if flags.DockerBaseImage != "" {
		cfg.Driver.Docker.BaseImage = flags.DockerBaseImage
	}
	if persistentSet {
		cfg.Driver.Persistent = flags.Persistent
	}
	if flags.DryRun {
		cfg.DryRun = true
	}
	return cfg
}

func driverChoices() string {
	names := make([]string, 0, len(build.DriverTypes))
	for _, d := range build.DriverTypes {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}
