package changelog_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/debmagic/debmagic/internal/build"
	"github.com/debmagic/debmagic/internal/changelog"
	h "github.com/debmagic/debmagic/testhelpers"
)

func TestChangelog(t *testing.T) {
	spec.Run(t, "Changelog", testChangelog, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testChangelog(t *testing.T, when spec.G, it spec.S) {
	when("#Head", func() {
		it("parses the first entry", func() {
			entry, err := changelog.Head(strings.NewReader(`htop (3.3.0-4) unstable experimental; urgency=Medium

  * New upstream release.

 -- Jane Doe <jane@example.org>  Mon, 01 Jan 2024 00:00:00 +0000

htop (3.2.2-1) unstable; urgency=low

  * Older release.

 -- Jane Doe <jane@example.org>  Mon, 01 Jan 2023 00:00:00 +0000
`))
			h.AssertNil(t, err)
			h.AssertEq(t, entry, changelog.Entry{
				Source:        "htop",
				Version:       "3.3.0-4",
				Distributions: []string{"unstable", "experimental"},
				Urgency:       "medium",
			})
		})

		it("accepts epochs and tildes in versions", func() {
			entry, err := changelog.Head(strings.NewReader("libfoo++ (2:1.0~rc1+dfsg-1) UNRELEASED; urgency=medium\n"))
			h.AssertNil(t, err)
			h.AssertEq(t, entry.Source, "libfoo++")
			h.AssertEq(t, entry.Version, "2:1.0~rc1+dfsg-1")
		})

		it("skips leading blank lines", func() {
			entry, err := changelog.Head(strings.NewReader("\n\nhello (1.0) unstable; urgency=medium\n"))
			h.AssertNil(t, err)
			h.AssertEq(t, entry.Source, "hello")
		})

		it("fails on an empty changelog", func() {
			_, err := changelog.Head(strings.NewReader("\n"))
			h.AssertErrorIs(t, err, changelog.ErrEmpty)
		})

		it("fails on a malformed header", func() {
			_, err := changelog.Head(strings.NewReader("hello 1.0 unstable\n"))
			h.AssertError(t, err, "line 1: not a changelog entry header")
		})
	})

	when("#ReadPackage", func() {
		it("describes the package from debian/changelog", func() {
			dir := t.TempDir()
			h.WriteFiles(t, dir, map[string]string{"debian/changelog": h.Changelog("hello", "1.0-1")})

			desc, err := changelog.ReadPackage(dir)
			h.AssertNil(t, err)
			h.AssertEq(t, desc, build.PackageDescription{Name: "hello", Version: "1.0-1", SourceDir: dir})
			h.AssertEq(t, desc.Identifier(), "hello-1.0-1")
		})

		it("fails without a changelog", func() {
			dir := t.TempDir()
			_, err := changelog.ReadPackage(dir)
			h.AssertError(t, err, "reading package description from "+dir)
			h.AssertPathDoesNotExist(t, filepath.Join(dir, "debian"))
		})
	})
}
