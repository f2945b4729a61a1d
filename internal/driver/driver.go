// Package driver creates build drivers by kind, either fresh for a new build
// or reconstructed from the metadata of a running one.
package driver

import (
	"context"
	"sync"

	"github.com/docker/docker/client"
	"github.com/pkg/errors"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/driver/bare"
	"github.com/debmagic/debmagic/internal/driver/docker"
)

type Options struct {
	Bare   bare.Options
	Docker docker.Options

	// DockerClient is created from the environment on first use when nil.
	DockerClient docker.Client
}

type Factory interface {
	New(ctx context.Context, kind build.DriverType, config build.Config) (build.Driver, error)
	FromMetadata(md build.Metadata) (build.Driver, error)
}

type DefaultFactory struct {
	opts Options

	once      sync.Once
	docker    docker.Client
	dockerErr error
}

func NewFactory(opts Options) *DefaultFactory {
	return &DefaultFactory{opts: opts, docker: opts.DockerClient}
}

func (f *DefaultFactory) dockerClient() (docker.Client, error) {
	f.once.Do(func() {
		if f.docker != nil {
			return
		}
		f.docker, f.dockerErr = client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if f.dockerErr != nil {
			f.dockerErr = errors.Wrap(f.dockerErr, "creating docker client")
		}
	})
	return f.docker, f.dockerErr
}

// New creates a driver for a new build.
func (f *DefaultFactory) New(ctx context.Context, kind build.DriverType, config build.Config) (build.Driver, error) {
	switch kind {
	case build.DriverBare:
		return bare.New(config, f.opts.Bare), nil
	case build.DriverDocker:
		dockerClient, err := f.dockerClient()
		if err != nil {
			return nil, err
		}
		d, err := docker.New(ctx, dockerClient, config, f.opts.Docker)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errors.Wrapf(build.ErrUnknownDriver, "%q", kind)
	}
}

// FromMetadata reconstructs the driver of an existing build.
func (f *DefaultFactory) FromMetadata(md build.Metadata) (build.Driver, error) {
	switch md.Driver {
	case build.DriverBare:
		return bare.New(md.Config, f.opts.Bare), nil
	case build.DriverDocker:
		dockerClient, err := f.dockerClient()
		if err != nil {
			return nil, err
		}
		d, err := docker.FromMetadata(dockerClient, md.Config, md.DriverMetadata, f.opts.Docker)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errors.Wrapf(build.ErrUnknownDriver, "%q", md.Driver)
	}
}
