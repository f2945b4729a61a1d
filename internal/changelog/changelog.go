// Package changelog reads the package identity from debian/changelog.
package changelog

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/debmagic/debmagic/internal/build"
)

// Entry is the header line of a changelog entry.
type Entry struct {
	Source        string
	Version       string
	Distributions []string
	Urgency       string
}

// entryHeader follows the header line format of deb-changelog(5).
var entryHeader = regexp.MustCompile(`^(\w[-+0-9a-z.]*) \(([^ ()]+)\)((?:\s+[-+0-9A-Za-z./]+)+);(.*)$`)

var urgencyField = regexp.MustCompile(`(?i)\burgency=([a-z]+)`)

var ErrEmpty = errors.New("changelog is empty")

// Head parses the first entry header of a changelog.
func Head(r io.Reader) (Entry, error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := entryHeader.FindStringSubmatch(line)
		if m == nil {
			return Entry{}, errors.Errorf("line %d: not a changelog entry header: %q", lineNo, line)
		}

		entry := Entry{
			Source:        m[1],
			Version:       m[2],
			Distributions: strings.Fields(m[3]),
		}
		if u := urgencyField.FindStringSubmatch(m[4]); u != nil {
			entry.Urgency = strings.ToLower(u[1])
		}
		return entry, nil
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, errors.Wrap(err, "reading changelog")
	}
	return Entry{}, ErrEmpty
}

// ReadPackage describes the source package in sourceDir from its
// debian/changelog.
func ReadPackage(sourceDir string) (build.PackageDescription, error) {
	path := filepath.Join(sourceDir, "debian", "changelog")
	f, err := os.Open(path)
	if err != nil {
		return build.PackageDescription{}, errors.Wrapf(err, "reading package description from %s", sourceDir)
	}
	defer f.Close()

	entry, err := Head(f)
	if err != nil {
		return build.PackageDescription{}, errors.Wrapf(err, "parsing %s", path)
	}
	return build.PackageDescription{
		Name:      entry.Source,
		Version:   entry.Version,
		SourceDir: sourceDir,
	}, nil
}
