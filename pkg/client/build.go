package client

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/pkg/errors"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/changelog"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/style"
)

// ErrSigningNotSupported is returned for builds that ask for a signed package.
var ErrSigningNotSupported = errors.New("package signing is not supported yet")

var (
	installBuildDepsCommand = []string{"apt-get", "-y", "build-dep", "."}
	buildPackageCommand     = []string{"dpkg-buildpackage", "-us", "-uc", "-ui", "-nc", "-b"}
)

// BuildOptions define configuration settings for Build.
type BuildOptions struct {
	// Driver selects the environment the package is built in.
	Driver build.DriverType

	// SourceDir is the unpacked Debian source package to build. It must
	// contain debian/changelog and debian/control.
	SourceDir string

	// OutputDir receives the built artifacts.
	OutputDir string

	// TempBuildDir holds one build root per package.
	TempBuildDir string

	Distro        string
	DistroVersion string

	// DryRun logs the commands instead of running them.
	DryRun bool

	// Sign requests a signed package.
	Sign bool
}

// BuildResult describes a finished build.
type BuildResult struct {
	Config    build.Config
	Artifacts []string
}

func (o BuildOptions) validate() error {
	if o.Sign {
		return ErrSigningNotSupported
	}
	if _, err := build.ParseDriverType(string(o.Driver)); err != nil {
		return err
	}
	if o.SourceDir == "" {
		return errors.New("source directory must be set")
	}
	if o.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if o.TempBuildDir == "" {
		return errors.New("temp build directory must be set")
	}
	return nil
}

func (c *Client) buildConfig(opts BuildOptions) (build.Config, error) {
	sourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return build.Config{}, errors.Wrap(err, "resolving source directory")
	}
	outputDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return build.Config{}, errors.Wrap(err, "resolving output directory")
	}
	tempBuildDir, err := filepath.Abs(opts.TempBuildDir)
	if err != nil {
		return build.Config{}, errors.Wrap(err, "resolving temp build directory")
	}

	pkg, err := changelog.ReadPackage(sourceDir)
	if err != nil {
		return build.Config{}, err
	}

	cfg := build.Config{
		PackageIdentifier: pkg.Identifier(),
		BuildRootDir:      filepath.Join(tempBuildDir, pkg.Identifier()),
		SourceDir:         sourceDir,
		OutputDir:         outputDir,
		Distro:            opts.Distro,
		DistroVersion:     opts.DistroVersion,
		DryRun:            opts.DryRun,
		SignPackage:       opts.Sign,
	}
	return cfg, cfg.Validate()
}

// Build builds the source package in opts.SourceDir with the selected driver
// and collects the resulting artifacts into opts.OutputDir.
//
// When the build fails and the client is attached to an interactive
// terminal, a shell is opened in the build environment before cleaning up.
// Cleanup waits until every shell attached through Shell has detached.
func (c *Client) Build(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	if err := opts.validate(); err != nil {
		return BuildResult{}, errors.Wrap(err, "invalid build options")
	}

	cfg, err := c.buildConfig(opts)
	if err != nil {
		return BuildResult{}, errors.Wrap(err, "invalid build options")
	}

	logging.Step(c.logger, "Preparing build root %s", style.Symbol(cfg.BuildRootDir))
	if err := prepareBuildRoot(cfg, c.logger); err != nil {
		return BuildResult{}, errors.Wrap(err, "preparing build root")
	}

	drv, err := c.driverFactory.New(ctx, opts.Driver, cfg)
	if err != nil {
		return BuildResult{}, errors.Wrapf(err, "creating %s build driver", style.Symbol(opts.Driver.String()))
	}
	// cleanup must still reach the backend after the build was interrupted
	cleanupCtx := context.WithoutCancel(ctx)

	store := build.NewStore(cfg.BuildRootDir)
	if err := store.Create(build.Metadata{
		Driver:         drv.Type(),
		Config:         cfg,
		DriverMetadata: drv.Metadata(),
	}); err != nil {
		drv.Cleanup(cleanupCtx)
		return BuildResult{}, err
	}

	result := BuildResult{Config: cfg}
	result.Artifacts, err = c.runBuild(ctx, drv, cfg)
	if err != nil {
		c.failureShell(ctx, drv, err)
	}

	c.waitForDetach(ctx, drv, store)
	drv.Cleanup(cleanupCtx)

	if err != nil {
		return result, errors.Wrapf(err, "building %s", style.Symbol(cfg.PackageIdentifier))
	}
	return result, nil
}

func (c *Client) runBuild(ctx context.Context, drv build.Driver, cfg build.Config) ([]string, error) {
	logging.Step(c.logger, "Installing build dependencies")
	if err := drv.RunCommand(ctx, installBuildDepsCommand, cfg.SourceBuildDir(), true); err != nil {
		return nil, err
	}

	logging.Step(c.logger, "Building package")
	if err := drv.RunCommand(ctx, buildPackageCommand, cfg.SourceBuildDir(), false); err != nil {
		return nil, err
	}

	if cfg.DryRun {
		c.logger.Info("[dry-run] Skipping artifact collection")
		return nil, nil
	}

	logging.Step(c.logger, "Collecting artifacts into %s", style.Symbol(cfg.OutputDir))
	return collectArtifacts(cfg, c.logger)
}

func (c *Client) failureShell(ctx context.Context, drv build.Driver, buildErr error) {
	if !c.terminal.IsInteractive() {
		return
	}

	c.logger.Errorf("Build failed: %s. Dropping into shell...", buildErr)
	if err := drv.InteractiveShell(ctx); err != nil {
		c.logger.Warnf("Shell exited with an error: %s", err)
	}
}

// waitForDetach blocks until no shell is attached to the build. Builds on
// the host leave nothing behind to wait for.
func (c *Client) waitForDetach(ctx context.Context, drv build.Driver, store *build.Store) {
	if drv.Type() == build.DriverBare {
		return
	}

	var deadline <-chan time.Time
	if c.attachMaxWait > 0 {
		timer := time.NewTimer(c.attachMaxWait)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(c.attachPollInterval)
	defer ticker.Stop()

	last := -1
	for {
		count, err := store.AttachedCount(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Warnf("Stopped waiting for attached shells: %s", ctx.Err())
				return
			}
			c.logger.Warnf("Could not check for attached shells: %s", err)
			return
		}
		if count == 0 {
			return
		}
		if count != last {
			c.logger.Info(style.Waiting("Waiting for %s to detach ...", english.Plural(count, "attached shell", "")))
			last = count
		}

		select {
		case <-ctx.Done():
			c.logger.Warnf("Stopped waiting for attached shells: %s", ctx.Err())
			return
		case <-deadline:
			c.logger.Warnf("Gave up waiting for %s after %s", english.Plural(count, "attached shell", ""), c.attachMaxWait)
			return
		case <-ticker.C:
		}
	}
}
