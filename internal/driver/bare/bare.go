// Package bare implements a build driver that runs commands directly on the
// host.
package bare

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/style"
	"github.com/debmagic/debmagic/internal/terminal"
)

const (
	DefaultPrivilegeWrapper = "sudo"
	DefaultShell            = "/bin/bash"
)

type Options struct {
	// PrivilegeWrapper prefixes commands that require root when the current
	// user is not root. It is split on whitespace.
	PrivilegeWrapper string
	// Shell overrides $SHELL for InteractiveShell.
	Shell string

	Logger   logging.Logger
	Terminal terminal.Terminal
}

type Driver struct {
	config build.Config
	opts   Options
	euid   func() int
}

func New(config build.Config, opts Options) *Driver {
	if opts.PrivilegeWrapper == "" {
		opts.PrivilegeWrapper = DefaultPrivilegeWrapper
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}
	if opts.Terminal == nil {
		opts.Terminal = terminal.Std()
	}
	return &Driver{
		config: config,
		opts:   opts,
		euid:   unix.Geteuid,
	}
}

func (d *Driver) Type() build.DriverType {
	return build.DriverBare
}

func (d *Driver) RunCommand(ctx context.Context, argv []string, workDir string, requiresRoot bool) error {
	if len(argv) == 0 {
		return errors.New("no command given")
	}

	command := argv
	if requiresRoot && d.euid() != 0 {
		command = append(strings.Fields(d.opts.PrivilegeWrapper), argv...)
	}

	if d.config.DryRun {
		d.opts.Logger.Infof("[dry-run] Would run: %s", strings.Join(command, " "))
		return nil
	}

	d.opts.Logger.Debugf("Running %s in %s", style.Symbol(strings.Join(command, " ")), workDir)
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = d.opts.Terminal.Stdout()
	cmd.Stderr = d.opts.Terminal.Stderr()
	return runCmd(cmd, command)
}

// InteractiveShell starts a login shell in the source build directory.
func (d *Driver) InteractiveShell(ctx context.Context) error {
	shell := d.opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = DefaultShell
	}
	command := []string{shell, "-l"}

	if d.config.DryRun {
		d.opts.Logger.Infof("[dry-run] Would run: %s", strings.Join(command, " "))
		return nil
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = d.config.SourceBuildDir()
	cmd.Stdin = d.opts.Terminal.Stdin()
	cmd.Stdout = d.opts.Terminal.Stdout()
	cmd.Stderr = d.opts.Terminal.Stderr()
	return runCmd(cmd, command)
}

// Cleanup is a no-op, nothing outlives a command.
func (d *Driver) Cleanup(context.Context) {}

func (d *Driver) Metadata() map[string]string {
	return map[string]string{}
}

func runCmd(cmd *exec.Cmd, command []string) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return errors.Wrapf(err, "running %s", style.Symbol(strings.Join(command, " ")))
	}

	execErr := &build.ExecutionError{Command: command, ExitCode: exitErr.ExitCode()}
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		execErr.Signal = status.Signal().String()
	}
	return execErr
}
