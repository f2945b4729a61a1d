package client

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/changelog"
	"github.com/debmagic/debmagic/internal/style"
)

// ShellOptions define configuration settings for Shell.
type ShellOptions struct {
	// SourceDir identifies the package whose build to attach to.
	SourceDir string

	// TempBuildDir holds one build root per package.
	TempBuildDir string
}

// Shell opens an interactive shell in the environment of a running build.
// The build waits for the shell to exit before cleaning up.
func (c *Client) Shell(ctx context.Context, opts ShellOptions) (err error) {
	sourceDir, err := filepath.Abs(opts.SourceDir)
	if err != nil {
		return errors.Wrap(err, "resolving source directory")
	}
	tempBuildDir, err := filepath.Abs(opts.TempBuildDir)
	if err != nil {
		return errors.Wrap(err, "resolving temp build directory")
	}
	pkg, err := changelog.ReadPackage(sourceDir)
	if err != nil {
		return err
	}

	buildRoot := filepath.Join(tempBuildDir, pkg.Identifier())
	store := build.NewStore(buildRoot)

	var drv build.Driver
	_, err = store.Update(ctx, func(md *build.Metadata) error {
		d, err := c.driverFactory.FromMetadata(*md)
		if err != nil {
			return err
		}
		drv = d
		md.NumProcessesAttached++
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "attaching to build of %s", style.Symbol(pkg.Identifier()))
	}

	defer func() {
		// detach even if the caller gave up, the build is waiting on us
		if _, detachErr := store.Detach(context.WithoutCancel(ctx)); detachErr != nil {
			if err == nil {
				err = errors.Wrap(detachErr, "detaching from build")
				return
			}
			c.logger.Warnf("Failed to detach from build: %s", detachErr)
		}
	}()

	c.logger.Debugf("Attached to %s build of %s", style.Symbol(drv.Type().String()), style.Symbol(pkg.Identifier()))
	return drv.InteractiveShell(ctx)
}
