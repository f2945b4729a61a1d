package docker

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/debmagic/debmagic/internal/style"
)

const inputPollInterval = 50 * time.Millisecond

// InteractiveShell opens a TTY shell in the container, in the source build
// directory, and blocks until the user leaves it.
func (d *Driver) InteractiveShell(ctx context.Context) error {
	containerDir, err := d.TranslatePath(d.config.SourceBuildDir())
	if err != nil {
		return err
	}

	if d.config.DryRun {
		d.opts.Logger.Infof("[dry-run] Would run: %s (in %s:%s)", strings.Join(shellCommand, " "), d.containerName, containerDir)
		return nil
	}

	term := d.opts.Terminal
	var consoleSize *[2]uint
	if width, height, err := term.Size(); err == nil {
		consoleSize = &[2]uint{uint(height), uint(width)}
	}

	exec, err := d.docker.ContainerExecCreate(ctx, d.containerName, types.ExecConfig{
		User:         d.opts.User,
		Tty:          true,
		ConsoleSize:  consoleSize,
		AttachStdin:  true,
		AttachStdout: true,
		AttachStderr: true,
		WorkingDir:   containerDir,
		Cmd:          shellCommand,
	})
	if err != nil {
		return errors.Wrapf(err, "creating shell in container %s", style.Symbol(d.containerName))
	}

	resp, err := d.docker.ContainerExecAttach(ctx, exec.ID, types.ExecStartCheck{Tty: true, ConsoleSize: consoleSize})
	if err != nil {
		return errors.Wrapf(err, "attaching to shell in container %s", style.Symbol(d.containerName))
	}
	defer resp.Close()

	if term.IsInteractive() {
		restore, err := term.MakeRaw()
		if err != nil {
			return err
		}
		defer func() {
			if err := restore(); err != nil {
				d.opts.Logger.Warnf("Failed to restore terminal: %s", err)
			}
		}()

		stopResize := d.monitorResize(ctx, exec.ID)
		defer stopResize()
	}

	stopInput := d.forwardInput(resp, term.Stdin())
	defer stopInput()

	// a TTY exec has a single raw output stream
	if _, err := io.Copy(term.Stdout(), resp.Reader); err != nil {
		return errors.Wrap(err, "streaming shell output")
	}

	return d.checkExit(ctx, exec.ID, shellCommand)
}

// forwardInput copies in to the shell until the returned function is called.
// A file is polled before every read so that input typed after the shell
// exits stays with the local terminal.
func (d *Driver) forwardInput(resp types.HijackedResponse, in io.Reader) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	file, pollable := in.(interface{ Fd() uintptr })

	go func() {
		defer close(finished)
		defer func() { _ = resp.CloseWrite() }()

		buf := make([]byte, 32*1024)
		for {
			if pollable {
				ready, err := waitReadable(int(file.Fd()), done)
				if err != nil {
					d.opts.Logger.Debugf("Waiting for shell input: %s", err)
					return
				}
				if !ready {
					return
				}
			}

			n, err := in.Read(buf)
			if n > 0 {
				select {
				case <-done:
					return
				default:
				}
				if _, werr := resp.Conn.Write(buf[:n]); werr != nil {
					d.opts.Logger.Debugf("Forwarding input to shell: %s", werr)
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					d.opts.Logger.Debugf("Reading shell input: %s", err)
				}
				return
			}
		}
	}()

	return func() {
		close(done)
		// unblocks a pending write to the connection
		resp.Close()
		if pollable {
			<-finished
		}
	}
}

// waitReadable blocks until fd has input or done is closed, in which case
// it returns false.
func waitReadable(fd int, done <-chan struct{}) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		select {
		case <-done:
			return false, nil
		default:
		}

		n, err := unix.Poll(fds, int(inputPollInterval/time.Millisecond))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
}

// monitorResize keeps the shell's console size in sync with the local
// terminal until the returned function is called.
func (d *Driver) monitorResize(ctx context.Context, execID string) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGWINCH)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-sigs:
				width, height, err := d.opts.Terminal.Size()
				if err != nil {
					continue
				}
				if err := d.docker.ContainerExecResize(ctx, execID, container.ResizeOptions{Height: uint(height), Width: uint(width)}); err != nil {
					d.opts.Logger.Debugf("Resizing shell: %s", err)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
