package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/debmagic/debmagic/internal/archive"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/style"
)

// DefaultDockerfileTemplate produces an image with the package's build
// dependencies installed and an unprivileged user matching the host user.
// The container idles until commands are executed in it.
const DefaultDockerfileTemplate = `FROM {{ .BaseImage }}
ARG USERNAME={{ .User }}
ARG USER_UID=1000
ARG USER_GID=$USER_UID
ENV DEBIAN_FRONTEND=noninteractive
RUN apt-get update && apt-get install -y sudo dpkg-dev
RUN groupadd --gid $USER_GID $USERNAME \
    && useradd --uid $USER_UID --gid $USER_GID -m $USERNAME \
    && echo "$USERNAME ALL=(root) NOPASSWD:ALL" > /etc/sudoers.d/$USERNAME \
    && chmod 0440 /etc/sudoers.d/$USERNAME
COPY debian/control /build/package/debian/control
RUN apt-get -y build-dep /build/package
RUN mkdir -p {{ .MountPath }} && chown $USERNAME:$USERNAME {{ .MountPath }}
USER $USERNAME
ENTRYPOINT ["sleep", "infinity"]
`

const dockerfileName = "Dockerfile"

type dockerfileParams struct {
	BaseImage string
	User      string
	MountPath string
}

func (d *Driver) baseImage() string {
	if d.opts.BaseImage != "" {
		return d.opts.BaseImage
	}
	return fmt.Sprintf("docker.io/%s:%s", d.config.Distro, d.config.DistroVersion)
}

// RenderDockerfile renders the configured template for this build.
func (d *Driver) RenderDockerfile() (string, error) {
	baseImage := d.baseImage()
	if _, err := name.ParseReference(baseImage); err != nil {
		return "", errors.Wrapf(err, "invalid base image %s", style.Symbol(baseImage))
	}

	tmpl, err := template.New(dockerfileName).Option("missingkey=error").Parse(d.opts.DockerfileTemplate)
	if err != nil {
		return "", errors.Wrap(err, "parsing Dockerfile template")
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, dockerfileParams{
		BaseImage: baseImage,
		User:      d.opts.User,
		MountPath: d.opts.MountPath,
	}); err != nil {
		return "", errors.Wrap(err, "rendering Dockerfile template")
	}
	return sb.String(), nil
}

// buildArgs passes the host identity into the image unless it is root.
func (d *Driver) buildArgs() map[string]*string {
	args := map[string]*string{}
	if uid := d.euid(); uid != 0 {
		v := strconv.Itoa(uid)
		args["USER_UID"] = &v
	}
	if gid := d.egid(); gid != 0 {
		v := strconv.Itoa(gid)
		args["USER_GID"] = &v
	}
	return args
}

// prepareContext writes the Dockerfile and the package's control file into
// the build's temp directory, which becomes the image build context.
func (d *Driver) prepareContext() error {
	dockerfile, err := d.RenderDockerfile()
	if err != nil {
		return err
	}

	contextDir := d.config.TempDir()
	if err := os.MkdirAll(filepath.Join(contextDir, "debian"), 0755); err != nil {
		return errors.Wrap(err, "creating image build context")
	}
	if err := os.WriteFile(filepath.Join(contextDir, dockerfileName), []byte(dockerfile), 0644); err != nil {
		return errors.Wrap(err, "writing Dockerfile")
	}

	control, err := os.ReadFile(filepath.Join(d.config.SourceBuildDir(), "debian", "control"))
	if err != nil {
		return errors.Wrap(err, "reading debian/control")
	}
	if err := os.WriteFile(filepath.Join(contextDir, "debian", "control"), control, 0644); err != nil {
		return errors.Wrap(err, "copying debian/control")
	}
	return nil
}

func (d *Driver) buildImage(ctx context.Context) (string, error) {
	if err := d.prepareContext(); err != nil {
		return "", err
	}

	image := ImageName(d.config)
	logging.Step(d.opts.Logger, "Building image %s from %s", style.Symbol(image), style.Symbol(d.baseImage()))

	buildCtx := archive.ReadDirAsTar(d.config.TempDir(), "", 0, 0, -1)
	defer buildCtx.Close()

	resp, err := d.docker.ImageBuild(ctx, buildCtx, types.ImageBuildOptions{
		Tags:        []string{image},
		Dockerfile:  dockerfileName,
		BuildArgs:   d.buildArgs(),
		Remove:      true,
		ForceRemove: true,
	})
	if err != nil {
		return "", errors.Wrapf(err, "building image %s", style.Symbol(image))
	}
	defer resp.Body.Close()

	out := logging.GetWriterForLevel(d.opts.Logger, logging.InfoLevel)
	fd, isTerm := terminalFd(out)
	if err := jsonmessage.DisplayJSONMessagesStream(resp.Body, out, fd, isTerm, nil); err != nil {
		return "", errors.Wrapf(err, "building image %s", style.Symbol(image))
	}
	return image, nil
}

func terminalFd(w io.Writer) (uintptr, bool) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return 0, false
	}
	fd := f.Fd()
	return fd, term.IsTerminal(int(fd))
}
