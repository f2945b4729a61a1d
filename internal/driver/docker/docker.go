// Package docker implements a build driver that runs every command inside
// a long-lived container with the build root bind-mounted into it.
package docker

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/google/uuid"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/style"
	"github.com/debmagic/debmagic/internal/terminal"
)

//go:generate mockgen -package testmocks -destination ../../testmocks/mock_docker_client.go -mock_names Client=MockDockerClient github.com/debmagic/debmagic/internal/driver/docker Client

// Client is the subset of the Docker Engine API the driver uses.
type Client interface {
	ImageBuild(ctx context.Context, buildContext io.Reader, options types.ImageBuildOptions) (types.ImageBuildResponse, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ContainerRemove(ctx context.Context, containerID string, options container.RemoveOptions) error
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerExecCreate(ctx context.Context, container string, config types.ExecConfig) (types.IDResponse, error)
	ContainerExecAttach(ctx context.Context, execID string, config types.ExecStartCheck) (types.HijackedResponse, error)
	ContainerExecInspect(ctx context.Context, execID string) (types.ContainerExecInspect, error)
	ContainerExecResize(ctx context.Context, execID string, options container.ResizeOptions) error
}

const (
	// MetadataContainerName is the driver metadata key holding the container name.
	MetadataContainerName = "container_name"

	DefaultMountPath = "/debmagic"
	DefaultUser      = "user"

	namePrefix = "debmagic-"
	rootUser   = "root"
)

var shellCommand = []string{"/usr/bin/env", "bash"}

type Options struct {
	// BaseImage defaults to docker.io/<distro>:<distro version>.
	BaseImage string
	// MountPath is where the build root appears inside the container.
	MountPath string
	// User runs unprivileged commands and the interactive shell.
	User string
	// DockerfileTemplate overrides the built-in build image template.
	DockerfileTemplate string
	// Persistent keeps the container around between builds.
	Persistent bool

	Logger   logging.Logger
	Terminal terminal.Terminal
}

func (o *Options) setDefaults() {
	if o.MountPath == "" {
		o.MountPath = DefaultMountPath
	}
	if o.User == "" {
		o.User = DefaultUser
	}
	if o.DockerfileTemplate == "" {
		o.DockerfileTemplate = DefaultDockerfileTemplate
	}
	if o.Logger == nil {
		o.Logger = logging.NewDiscardLogger()
	}
	if o.Terminal == nil {
		o.Terminal = terminal.Std()
	}
}

type Driver struct {
	docker        Client
	config        build.Config
	opts          Options
	containerName string
	euid          func() int
	egid          func() int
}

func newDriver(docker Client, config build.Config, opts Options, containerName string) *Driver {
	opts.setDefaults()
	return &Driver{
		docker:        docker,
		config:        config,
		opts:          opts,
		containerName: containerName,
		euid:          unix.Geteuid,
		egid:          unix.Getegid,
	}
}

// invalidNameChars matches what may not appear in container names and image
// tags. Debian versions can carry epochs (":") and tildes.
var invalidNameChars = regexp.MustCompile(`[^a-z0-9_.-]`)

func objectName(config build.Config) string {
	return namePrefix + invalidNameChars.ReplaceAllString(strings.ToLower(config.BuildIdentifier()), "_")
}

// ContainerName is the deterministic container name for a build.
func ContainerName(config build.Config) string {
	return objectName(config)
}

// ImageName is the tag of the build image for a build.
func ImageName(config build.Config) string {
	return objectName(config)
}

// New prepares the build image and a running container for config. In
// persistent mode an existing container is reused as is.
func New(ctx context.Context, docker Client, config build.Config, opts Options) (*Driver, error) {
	d := newDriver(docker, config, opts, newContainerName(config, opts.Persistent))
	if err := d.acquireContainer(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func newContainerName(config build.Config, persistent bool) string {
	name := ContainerName(config)
	if persistent {
		return name
	}
	return name + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func (d *Driver) acquireContainer(ctx context.Context) error {
	name := d.containerName
	if d.config.DryRun {
		d.opts.Logger.Infof("[dry-run] Would build image %s and start container %s", style.Symbol(ImageName(d.config)), style.Symbol(name))
		return nil
	}

	if d.opts.Persistent {
		inspect, err := d.docker.ContainerInspect(ctx, name)
		switch {
		case err == nil:
			d.opts.Logger.Infof("Reusing container %s", style.Symbol(name))
			if inspect.ContainerJSONBase != nil && inspect.State != nil && inspect.State.Running {
				return nil
			}
			if err := d.docker.ContainerStart(ctx, name, container.StartOptions{}); err != nil {
				return errors.Wrapf(err, "starting container %s", style.Symbol(name))
			}
			return nil
		case !errdefs.IsNotFound(err):
			return errors.Wrapf(err, "inspecting container %s", style.Symbol(name))
		}
	}

	// a previous build of the same package may have left its container behind
	stale := ContainerName(d.config)
	if err := d.removeContainer(ctx, stale); err != nil {
		return errors.Wrapf(err, "removing stale container %s", style.Symbol(stale))
	}

	image, err := d.buildImage(ctx)
	if err != nil {
		return err
	}

	return d.startContainer(ctx, image)
}

// FromMetadata rebuilds a driver for an existing build from its persisted
// driver metadata. No Docker calls are made.
func FromMetadata(docker Client, config build.Config, metadata map[string]string, opts Options) (*Driver, error) {
	name, ok := metadata[MetadataContainerName]
	if !ok || name == "" {
		return nil, errors.Errorf("build metadata has no %s", style.Symbol(MetadataContainerName))
	}
	return newDriver(docker, config, opts, name), nil
}

func (d *Driver) Type() build.DriverType {
	return build.DriverDocker
}

func (d *Driver) ContainerName() string {
	return d.containerName
}

func (d *Driver) Metadata() map[string]string {
	return map[string]string{MetadataContainerName: d.containerName}
}

// TranslatePath maps a host path inside the build root to the corresponding
// path inside the container.
func (d *Driver) TranslatePath(hostPath string) (string, error) {
	rel, err := filepath.Rel(d.config.BuildRootDir, filepath.Clean(hostPath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", errors.Wrapf(build.ErrPathOutsideBuildRoot, "%s (build root %s)", hostPath, d.config.BuildRootDir)
	}
	return path.Join(d.opts.MountPath, filepath.ToSlash(rel)), nil
}

func (d *Driver) RunCommand(ctx context.Context, argv []string, workDir string, requiresRoot bool) error {
	if len(argv) == 0 {
		return errors.New("no command given")
	}

	containerDir, err := d.TranslatePath(workDir)
	if err != nil {
		return err
	}

	user := d.opts.User
	if requiresRoot {
		user = rootUser
	}

	if d.config.DryRun {
		d.opts.Logger.Infof("[dry-run] Would run: %s (as %s in %s:%s)", strings.Join(argv, " "), user, d.containerName, containerDir)
		return nil
	}

	d.opts.Logger.Debugf("Running %s as %s in %s", style.Symbol(strings.Join(argv, " ")), user, style.Symbol(containerDir))
	exec, err := d.docker.ContainerExecCreate(ctx, d.containerName, types.ExecConfig{
		User:         user,
		AttachStdout: true,
		AttachStderr: true,
		WorkingDir:   containerDir,
		Cmd:          argv,
	})
	if err != nil {
		return errors.Wrapf(err, "creating exec in container %s", style.Symbol(d.containerName))
	}

	resp, err := d.docker.ContainerExecAttach(ctx, exec.ID, types.ExecStartCheck{})
	if err != nil {
		return errors.Wrapf(err, "attaching to exec in container %s", style.Symbol(d.containerName))
	}
	defer resp.Close()

	if _, err := stdcopy.StdCopy(d.opts.Terminal.Stdout(), d.opts.Terminal.Stderr(), resp.Reader); err != nil {
		return errors.Wrap(err, "streaming command output")
	}

	return d.checkExit(ctx, exec.ID, argv)
}

func (d *Driver) checkExit(ctx context.Context, execID string, argv []string) error {
	inspect, err := d.docker.ContainerExecInspect(ctx, execID)
	if err != nil {
		return errors.Wrapf(err, "inspecting exec in container %s", style.Symbol(d.containerName))
	}
	if inspect.ExitCode != 0 {
		return &build.ExecutionError{Command: argv, ExitCode: inspect.ExitCode}
	}
	return nil
}

// Cleanup stops a persistent container and removes any other.
func (d *Driver) Cleanup(ctx context.Context) {
	if d.config.DryRun {
		d.opts.Logger.Infof("[dry-run] Would clean up container %s", style.Symbol(d.containerName))
		return
	}

	if d.opts.Persistent {
		d.opts.Logger.Debugf("Stopping container %s", style.Symbol(d.containerName))
		if err := d.docker.ContainerStop(ctx, d.containerName, container.StopOptions{}); err != nil && !errdefs.IsNotFound(err) {
			d.opts.Logger.Warnf("Failed to stop container %s: %s", style.Symbol(d.containerName), err)
		}
		return
	}

	d.opts.Logger.Debugf("Removing container %s", style.Symbol(d.containerName))
	if err := d.removeContainer(ctx, d.containerName); err != nil {
		d.opts.Logger.Warnf("Failed to remove container %s: %s", style.Symbol(d.containerName), err)
	}
}

func (d *Driver) removeContainer(ctx context.Context, name string) error {
	err := d.docker.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
	if err != nil && !errdefs.IsNotFound(err) {
		return err
	}
	return nil
}

func (d *Driver) startContainer(ctx context.Context, image string) error {
	ctr, err := d.docker.ContainerCreate(ctx,
		&container.Config{
			Image: image,
		},
		&container.HostConfig{
			// a bind spec string cannot carry the ':' of epoch versions
			Mounts: []mount.Mount{{
				Type:   mount.TypeBind,
				Source: d.config.BuildRootDir,
				Target: d.opts.MountPath,
			}},
		},
		nil, nil, d.containerName,
	)
	if err != nil {
		return errors.Wrapf(err, "creating container %s", style.Symbol(d.containerName))
	}
	for _, w := range ctr.Warnings {
		d.opts.Logger.Warn(w)
	}

	if err := d.docker.ContainerStart(ctx, ctr.ID, container.StartOptions{}); err != nil {
		if rmErr := d.removeContainer(ctx, d.containerName); rmErr != nil {
			d.opts.Logger.Warnf("Failed to remove container %s: %s", style.Symbol(d.containerName), rmErr)
		}
		return errors.Wrapf(err, "starting container %s", style.Symbol(d.containerName))
	}
	d.opts.Logger.Debugf("Started container %s", style.Symbol(d.containerName))
	return nil
}
