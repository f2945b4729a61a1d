package client

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/style"
)

// artifactPatterns match what dpkg-buildpackage leaves next to the source
// directory.
var artifactPatterns = []string{"*.deb", "*.changes", "*.buildinfo", "*.dsc"}

// collectArtifacts copies the build results into the output directory and
// returns their new paths.
func collectArtifacts(cfg build.Config, logger logging.Logger) ([]string, error) {
	var found []string
	for _, pattern := range artifactPatterns {
		matches, err := filepath.Glob(filepath.Join(cfg.ArtifactDir(), pattern))
		if err != nil {
			return nil, errors.Wrapf(err, "matching %s", pattern)
		}
		found = append(found, matches...)
	}
	sort.Strings(found)

	var collected []string
	for _, src := range found {
		info, err := os.Lstat(src)
		if err != nil {
			return nil, err
		}
		if !info.Mode().IsRegular() {
			continue
		}

		dst := filepath.Join(cfg.OutputDir, filepath.Base(src))
		if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
			return nil, errors.Wrapf(err, "collecting %s", filepath.Base(src))
		}
		logger.Infof("Collected %s (%s)", style.Symbol(filepath.Base(src)), humanize.Bytes(uint64(info.Size())))
		collected = append(collected, dst)
	}

	if len(collected) == 0 {
		logger.Warnf("No build artifacts found in %s", style.Symbol(cfg.ArtifactDir()))
	}
	return collected, nil
}
