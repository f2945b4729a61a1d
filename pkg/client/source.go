package client

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/logging"
	"github.com/debmagic/debmagic/internal/style"
)

// ignoreFiles are read from the root of the source directory.
var ignoreFiles = []string{".gitignore", ".ignore"}

// alwaysIgnored is never copied into a build root.
var alwaysIgnored = []string{".git/"}

// prepareBuildRoot replaces any previous build root for the package with a
// fresh copy of the source.
func prepareBuildRoot(cfg build.Config, logger logging.Logger) error {
	if err := os.RemoveAll(cfg.BuildRootDir); err != nil {
		return errors.Wrapf(err, "removing previous build root %s", style.Symbol(cfg.BuildRootDir))
	}
	if err := cfg.CreateDirs(); err != nil {
		return err
	}

	matcher, err := sourceIgnoreMatcher(cfg.SourceDir)
	if err != nil {
		return err
	}
	return copySource(cfg.SourceDir, cfg.SourceBuildDir(), matcher, logger)
}

func sourceIgnoreMatcher(sourceDir string) (*ignore.GitIgnore, error) {
	lines := append([]string{}, alwaysIgnored...)
	for _, name := range ignoreFiles {
		data, err := os.ReadFile(filepath.Join(sourceDir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", name)
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	return ignore.CompileIgnoreLines(lines...), nil
}

// copySource copies srcDir into dstDir, skipping ignored paths. Symlinks are
// recreated as is, other special files are skipped.
func copySource(srcDir, dstDir string, matcher *ignore.GitIgnore, logger logging.Logger) error {
	return filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		slashed := filepath.ToSlash(rel)
		if entry.IsDir() {
			slashed += "/"
		}
		if matcher.MatchesPath(slashed) {
			logger.Debugf("Skipping ignored %s", style.Symbol(slashed))
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}

		target := filepath.Join(dstDir, rel)
		switch mode := info.Mode(); {
		case mode.IsDir():
			return os.MkdirAll(target, mode.Perm()|0700)
		case mode&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case mode.IsRegular():
			return copyFile(path, target, mode.Perm())
		default:
			logger.Debugf("Skipping special file %s", style.Symbol(slashed))
			return nil
		}
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying %s", src)
	}
	return out.Close()
}
