package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	workDirName = "work"
	tempDirName = "temp"
)

// PackageDescription identifies the source package being built.
type PackageDescription struct {
	Name      string
	Version   string
	SourceDir string
}

// Identifier returns "<name>-<version>", the name of the package's build root.
func (p PackageDescription) Identifier() string {
	return fmt.Sprintf("%s-%s", p.Name, p.Version)
}

// Config describes a single build. It is a value: copies are handed to
// drivers and persisted in the build metadata, and it is never modified
// once the build starts.
type Config struct {
	PackageIdentifier string `json:"package_identifier"`
	BuildRootDir      string `json:"build_root_dir"`
	SourceDir         string `json:"source_dir"`
	OutputDir         string `json:"output_dir"`
	Distro            string `json:"distro"`
	DistroVersion     string `json:"distro_version"`
	DryRun            bool   `json:"dry_run"`
	SignPackage       bool   `json:"sign_package"`
}

// BuildIdentifier is unique per package, distribution and release. Images and
// containers are named after it so repeated builds can reuse them.
func (c Config) BuildIdentifier() string {
	return fmt.Sprintf("%s-%s-%s", c.PackageIdentifier, c.Distro, c.DistroVersion)
}

func (c Config) WorkDir() string {
	return filepath.Join(c.BuildRootDir, workDirName)
}

func (c Config) TempDir() string {
	return filepath.Join(c.BuildRootDir, tempDirName)
}

// SourceBuildDir is where the package source is copied to and built from.
func (c Config) SourceBuildDir() string {
	return filepath.Join(c.WorkDir(), c.PackageIdentifier)
}

// ArtifactDir is the directory dpkg-buildpackage writes its results to.
func (c Config) ArtifactDir() string {
	return filepath.Dir(c.SourceBuildDir())
}

// MetadataPath is the location of the build metadata document.
func (c Config) MetadataPath() string {
	return MetadataPath(c.BuildRootDir)
}

// CreateDirs creates the output directory and the build root layout.
func (c Config) CreateDirs() error {
	for _, dir := range []string{c.OutputDir, c.WorkDir(), c.TempDir(), c.SourceBuildDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dir)
		}
	}
	return nil
}

// Validate checks that the config describes a buildable layout.
func (c Config) Validate() error {
	switch {
	case c.PackageIdentifier == "":
		return errors.New("package identifier must not be empty")
	case !filepath.IsAbs(c.BuildRootDir):
		return errors.Errorf("build root %s must be an absolute path", c.BuildRootDir)
	case c.Distro == "" || c.DistroVersion == "":
		return errors.New("distro and distro version must be set")
	}
	return nil
}
