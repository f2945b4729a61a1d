package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/heroku/color"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/debmagic/debmagic/internal/config"
	"github.com/debmagic/debmagic/internal/logging"
	h "github.com/debmagic/debmagic/testhelpers"
)

func TestDebmagicCommand(t *testing.T) {
	color.Disable(true)
	defer color.Disable(false)
	spec.Run(t, "DebmagicCommand", testDebmagicCommand, spec.Report(report.Terminal{}))
}

func testDebmagicCommand(t *testing.T, when spec.G, it spec.S) {
	var (
		outBuf bytes.Buffer
		logger *logging.LogWithWriters
		tmpDir string
	)

	it.Before(func() {
		outBuf.Reset()
		logger = logging.NewLogWithWriters(&outBuf, &outBuf)
		tmpDir = t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
		xdg.Reload()
	})

	it.After(func() {
		xdg.Reload()
	})

	when("#NewDebmagicCommand", func() {
		it("prints the version", func() {
			command := NewDebmagicCommand(logger)
			command.SetArgs([]string{"version"})
			h.AssertNil(t, command.Execute())
			h.AssertEq(t, outBuf.String(), Version+"\n")
		})

		it("fails on an invalid config file", func() {
			configPath := filepath.Join(tmpDir, "config.toml")
			h.WriteFiles(t, tmpDir, map[string]string{"config.toml": "[driver]\nprivileged = true\n"})

			command := NewDebmagicCommand(logger)
			command.SetArgs([]string{"--config", configPath, "shell"})
			err := command.Execute()
			h.AssertError(t, err, "loading debmagic config")
			h.AssertError(t, err, "driver.privileged")
		})

		it("applies the global logging flags", func() {
			command := NewDebmagicCommand(logger)
			command.SetArgs([]string{"--quiet", "test"})
			h.AssertNil(t, command.Execute())
			h.AssertTrue(t, logger.IsQuiet())
			h.AssertEq(t, outBuf.String(), "")
		})
	})

	when("#driverOptions", func() {
		it("maps the driver configuration", func() {
			cfg := config.Default()
			cfg.Driver.Persistent = true
			cfg.Driver.Docker.BaseImage = "ubuntu:noble"
			cfg.Driver.Docker.MountPath = "/src"
			cfg.Driver.Docker.User = "builder"
			cfg.Driver.Bare.PrivilegeWrapper = "doas"
			cfg.Driver.Bare.Shell = "/bin/zsh"

			opts := driverOptions(cfg)
			h.AssertTrue(t, opts.Docker.Persistent)
			h.AssertEq(t, opts.Docker.BaseImage, "ubuntu:noble")
			h.AssertEq(t, opts.Docker.MountPath, "/src")
			h.AssertEq(t, opts.Docker.User, "builder")
			h.AssertEq(t, opts.Bare.PrivilegeWrapper, "doas")
			h.AssertEq(t, opts.Bare.Shell, "/bin/zsh")
		})
	})
}
