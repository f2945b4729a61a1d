package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/commands"
	"github.com/debmagic/debmagic/internal/commands/testmocks"
	"github.com/debmagic/debmagic/internal/config"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/pkg/client"
	h "github.com/debmagic/debmagic/testhelpers"
)

func TestBuildCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Commands", testBuildCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testBuildCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command        *cobra.Command
		logger         logging.Logger
		outBuf         bytes.Buffer
		mockController *gomock.Controller
		mockClient     *testmocks.MockDebmagicClient
		cfg            config.Config
		clientConfigs  []config.Config
		factoryErr     error
	)

	it.Before(func() {
		outBuf.Reset()
		logger = logging.NewLogWithWriters(&outBuf, &outBuf)
		cfg = config.Default()
		cfg.TempBuildDir = "/var/tmp/debmagic"
		clientConfigs = nil
		factoryErr = nil
		mockController = gomock.NewController(t)
		mockClient = testmocks.NewMockDebmagicClient(mockController)

		command = commands.Build(logger, &cfg, func(c config.Config) (commands.DebmagicClient, error) {
			clientConfigs = append(clientConfigs, c)
			if factoryErr != nil {
				return nil, factoryErr
			}
			return mockClient, nil
		})
		command.SetOut(&outBuf)
		command.SetErr(&outBuf)
	})

	it.After(func() {
		mockController.Finish()
	})

	when("#Build", func() {
		it("builds the package in the current directory by default", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), client.BuildOptions{
					Driver:        build.DriverDocker,
					SourceDir:     ".",
					OutputDir:     ".",
					TempBuildDir:  "/var/tmp/debmagic",
					Distro:        "debian",
					DistroVersion: "forky",
				}).
				Return(client.BuildResult{
					Config:    build.Config{PackageIdentifier: "hello-1.0-1"},
					Artifacts: []string{"/out/hello_1.0-1_amd64.deb", "/out/hello_1.0-1_amd64.changes"},
				}, nil)

			command.SetArgs([]string{"--driver", "docker"})
			h.AssertNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), "Successfully built 'hello-1.0-1'")
			h.AssertContains(t, outBuf.String(), "hello_1.0-1_amd64.deb")
			h.AssertContains(t, outBuf.String(), "hello_1.0-1_amd64.changes")
		})

		it("forwards directories and flags", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), client.BuildOptions{
					Driver:        build.DriverBare,
					SourceDir:     "src/hello",
					OutputDir:     "out",
					TempBuildDir:  "/var/tmp/debmagic",
					Distro:        "debian",
					DistroVersion: "forky",
					DryRun:        true,
				}).
				Return(client.BuildResult{Config: build.Config{PackageIdentifier: "hello-1.0-1"}}, nil)

			command.SetArgs([]string{"-d", "bare", "-s", "src/hello", "-o", "out", "--dry-run"})
			h.AssertNil(t, command.Execute())
			h.AssertContains(t, outBuf.String(), "Dry run of 'hello-1.0-1' finished")
		})

		it("layers driver flags over the configuration", func() {
			cfg.Driver.Docker.BaseImage = "debian:trixie"
			mockClient.EXPECT().Build(gomock.Any(), gomock.Any()).Return(client.BuildResult{}, nil)

			command.SetArgs([]string{"-d", "docker", "--docker-base-image", "ubuntu:noble", "--persistent"})
			h.AssertNil(t, command.Execute())

			h.AssertEq(t, len(clientConfigs), 1)
			h.AssertEq(t, clientConfigs[0].Driver.Docker.BaseImage, "ubuntu:noble")
			h.AssertTrue(t, clientConfigs[0].Driver.Persistent)
			h.AssertEq(t, cfg.Driver.Docker.BaseImage, "debian:trixie")
		})

		it("keeps configured values when flags are not given", func() {
			cfg.Driver.Docker.BaseImage = "debian:trixie"
			cfg.Driver.Persistent = true
			cfg.DryRun = true
			mockClient.EXPECT().
				Build(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, opts client.BuildOptions) (client.BuildResult, error) {
					h.AssertTrue(t, opts.DryRun)
					return client.BuildResult{}, nil
				})

			command.SetArgs([]string{"-d", "docker"})
			h.AssertNil(t, command.Execute())
			h.AssertEq(t, clientConfigs[0].Driver.Docker.BaseImage, "debian:trixie")
			h.AssertTrue(t, clientConfigs[0].Driver.Persistent)
		})

		it("turns off persistence from the configuration with --persistent=false", func() {
			cfg.Driver.Persistent = true
			mockClient.EXPECT().Build(gomock.Any(), gomock.Any()).Return(client.BuildResult{}, nil)

			command.SetArgs([]string{"-d", "docker", "--persistent=false"})
			h.AssertNil(t, command.Execute())

			h.AssertEq(t, len(clientConfigs), 1)
			h.AssertFalse(t, clientConfigs[0].Driver.Persistent)
			h.AssertTrue(t, cfg.Driver.Persistent)
		})

		it("passes the signing request on", func() {
			mockClient.EXPECT().
				Build(gomock.Any(), gomock.Any()).
				Return(client.BuildResult{}, client.ErrSigningNotSupported)

			command.SetArgs([]string{"-d", "bare", "--sign"})
			err := command.Execute()
			h.AssertErrorIs(t, err, client.ErrSigningNotSupported)
			h.AssertContains(t, outBuf.String(), "ERROR: package signing is not supported yet")
		})

		when("the driver flag is missing", func() {
			it("errors without building", func() {
				command.SetArgs([]string{"-s", "src"})
				err := command.Execute()
				h.AssertError(t, err, `required flag(s) "driver" not set`)
				h.AssertEq(t, len(clientConfigs), 0)
			})
		})

		when("the driver is unknown", func() {
			it("errors without building", func() {
				command.SetArgs([]string{"-d", "lxd"})
				err := command.Execute()
				h.AssertError(t, err, "unknown build driver")
				h.AssertEq(t, len(clientConfigs), 0)
			})
		})

		when("the client cannot be created", func() {
			it("logs the error", func() {
				factoryErr = errors.New("creating docker client: bad host")

				command.SetArgs([]string{"-d", "docker"})
				err := command.Execute()
				h.AssertError(t, err, "bad host")
				h.AssertContains(t, outBuf.String(), "ERROR: creating docker client: bad host")
			})
		})

		when("the build fails", func() {
			it("returns the build error", func() {
				buildErr := &build.ExecutionError{Command: []string{"apt-get", "-y", "build-dep", "."}, ExitCode: 100}
				mockClient.EXPECT().Build(gomock.Any(), gomock.Any()).Return(client.BuildResult{}, buildErr)

				command.SetArgs([]string{"-d", "docker"})
				err := command.Execute()
				h.AssertErrorIs(t, err, buildErr)
				h.AssertNotContains(t, outBuf.String(), "Successfully built")
			})
		})
	})
}
