package docker

import (
	"context"

	"github.com/debmagic/debmagic/internal/build"
)

func NewWithIdentity(ctx context.Context, docker Client, config build.Config, opts Options, uid, gid int) (*Driver, error) {
	d := newDriver(docker, config, opts, newContainerName(config, opts.Persistent))
	d.euid = func() int { return uid }
	d.egid = func() int { return gid }
	if err := d.acquireContainer(ctx); err != nil {
		return nil, err
	}
	return d, nil
}
