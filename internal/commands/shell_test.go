package commands_test

import (
	"bytes"
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

func TestShellCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "Commands", testShellCommand, spec.Random(), spec.Report(report.Terminal{}))
}

func testShellCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		command        *cobra.Command
		outBuf         bytes.Buffer
		mockController *gomock.Controller
		mockClient     *testmocks.MockDebmagicClient
		cfg            config.Config
	)

	it.Before(func() {
		outBuf.Reset()
		cfg = config.Default()
		mockController = gomock.NewController(t)
		mockClient = testmocks.NewMockDebmagicClient(mockController)

		command = commands.Shell(logging.NewLogWithWriters(&outBuf, &outBuf), &cfg, func(config.Config) (commands.DebmagicClient, error) {
			return mockClient, nil
		})
		command.SetOut(&outBuf)
		command.SetErr(&outBuf)
	})

	it.After(func() {
		mockController.Finish()
	})

	when("#Shell", func() {
		it("attaches to the build of the current directory", func() {
			mockClient.EXPECT().
				Shell(gomock.Any(), client.ShellOptions{SourceDir: ".", TempBuildDir: "/tmp/debmagic"}).
				Return(nil)

			command.SetArgs([]string{})
			h.AssertNil(t, command.Execute())
		})

		it("attaches to the build of the given source directory", func() {
			cfg.TempBuildDir = "/srv/builds"
			mockClient.EXPECT().
				Shell(gomock.Any(), client.ShellOptions{SourceDir: "src/hello", TempBuildDir: "/srv/builds"}).
				Return(nil)

			command.SetArgs([]string{"--source-dir", "src/hello"})
			h.AssertNil(t, command.Execute())
		})

		when("no build is running", func() {
			it("logs the error", func() {
				mockClient.EXPECT().
					Shell(gomock.Any(), gomock.Any()).
					Return(build.ErrNoMetadata)

				command.SetArgs([]string{"-s", "src/hello"})
				err := command.Execute()
				h.AssertErrorIs(t, err, build.ErrNoMetadata)
				h.AssertContains(t, outBuf.String(), "ERROR: ")
			})
		})
	})
}
