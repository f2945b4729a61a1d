package build_test

import (
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/debmagic/debmagic/internal/build"
	h "github.com/debmagic/debmagic/testhelpers"
)

func TestConfig(t *testing.T) {
	spec.Run(t, "Config", testConfig, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testConfig(t *testing.T, when spec.G, it spec.S) {
	var cfg build.Config

	it.Before(func() {
		cfg = build.Config{
			PackageIdentifier: "htop-3.3.0",
			BuildRootDir:      "/tmp/debmagic/htop-3.3.0",
			SourceDir:         "/home/me/htop",
			OutputDir:         "/home/me/out",
			Distro:            "debian",
			DistroVersion:     "forky",
		}
	})

	it("derives the build root layout", func() {
		h.AssertEq(t, cfg.WorkDir(), "/tmp/debmagic/htop-3.3.0/work")
		h.AssertEq(t, cfg.TempDir(), "/tmp/debmagic/htop-3.3.0/temp")
		h.AssertEq(t, cfg.SourceBuildDir(), "/tmp/debmagic/htop-3.3.0/work/htop-3.3.0")
		h.AssertEq(t, cfg.ArtifactDir(), "/tmp/debmagic/htop-3.3.0/work")
		h.AssertEq(t, cfg.MetadataPath(), "/tmp/debmagic/htop-3.3.0/build.json")
	})

	it("derives a build identifier from package and distribution", func() {
		h.AssertEq(t, cfg.BuildIdentifier(), "htop-3.3.0-debian-forky")
	})

	it("names packages by name and version", func() {
		desc := build.PackageDescription{Name: "htop", Version: "3.3.0-1"}
		h.AssertEq(t, desc.Identifier(), "htop-3.3.0-1")
	})

	when("#CreateDirs", func() {
		it("creates the output directory and the build root layout", func() {
			tmp := t.TempDir()
			cfg.BuildRootDir = filepath.Join(tmp, "root")
			cfg.OutputDir = filepath.Join(tmp, "out")

			h.AssertNil(t, cfg.CreateDirs())
			h.AssertNil(t, cfg.CreateDirs())

			h.AssertPathExists(t, cfg.OutputDir)
			h.AssertPathExists(t, cfg.TempDir())
			h.AssertPathExists(t, cfg.SourceBuildDir())
		})
	})

	when("#Validate", func() {
		it("accepts a complete config", func() {
			h.AssertNil(t, cfg.Validate())
		})

		it("requires a package identifier", func() {
			cfg.PackageIdentifier = ""
			h.AssertError(t, cfg.Validate(), "package identifier")
		})

		it("requires an absolute build root", func() {
			cfg.BuildRootDir = "relative/root"
			h.AssertError(t, cfg.Validate(), "must be an absolute path")
		})

		it("requires a distribution", func() {
			cfg.DistroVersion = ""
			h.AssertError(t, cfg.Validate(), "distro")
		})
	})
}
