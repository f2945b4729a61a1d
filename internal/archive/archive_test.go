package archive_test

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/debmagic/debmagic/internal/archive"
	h "github.com/debmagic/debmagic/testhelpers"
)

func TestArchive(t *testing.T) {
	spec.Run(t, "Archive", testArchive, spec.Parallel(), spec.Report(report.Terminal{}))
}

func testArchive(t *testing.T, when spec.G, it spec.S) {
	var src string

	it.Before(func() {
		src = t.TempDir()
		h.WriteFiles(t, src, map[string]string{
			"Dockerfile":     "FROM debian:forky\n",
			"debian/control": "Source: hello\n",
		})
		h.AssertNil(t, os.Symlink("control", filepath.Join(src, "debian", "link")))
	})

	when("#ReadDirAsTar", func() {
		it("streams the directory with normalized headers", func() {
			rc := archive.ReadDirAsTar(src, "", 0, 0, -1)
			defer rc.Close()

			tr := tar.NewReader(rc)
			entries := map[string]*tar.Header{}
			contents := map[string]string{}
			for {
				header, err := tr.Next()
				if err == io.EOF {
					break
				}
				h.AssertNil(t, err)
				entries[header.Name] = header

				data, err := io.ReadAll(tr)
				h.AssertNil(t, err)
				contents[header.Name] = string(data)
			}

			h.AssertEq(t, len(entries), 4)
			h.AssertEq(t, contents["Dockerfile"], "FROM debian:forky\n")
			h.AssertEq(t, contents["debian/control"], "Source: hello\n")
			h.AssertEq(t, entries["debian"].Typeflag, byte(tar.TypeDir))
			h.AssertEq(t, entries["debian/link"].Typeflag, byte(tar.TypeSymlink))
			h.AssertEq(t, entries["debian/link"].Linkname, "control")

			for name, header := range entries {
				if !header.ModTime.Equal(archive.NormalizedDateTime) {
					t.Fatalf("expected %s to have a normalized mod time, got %s", name, header.ModTime)
				}
				h.AssertEq(t, header.Uid, 0)
				h.AssertEq(t, header.Uname, "")
			}
		})

		it("places entries under the base path with the given owner and mode", func() {
			rc := archive.ReadDirAsTar(src, "/context", 1000, 1001, 0600)
			defer rc.Close()

			header, contents, err := archive.ReadTarEntry(rc, "/context/debian/control")
			h.AssertNil(t, err)
			h.AssertEq(t, string(contents), "Source: hello\n")
			h.AssertEq(t, header.Uid, 1000)
			h.AssertEq(t, header.Gid, 1001)
			h.AssertEq(t, header.Mode, int64(0600))
		})

		it("fails the stream when the directory does not exist", func() {
			rc := archive.ReadDirAsTar(filepath.Join(src, "missing"), "", 0, 0, -1)
			defer rc.Close()

			_, err := io.ReadAll(rc)
			h.AssertNotNil(t, err)
		})
	})

	when("#ReadTarEntry", func() {
		it("reports a missing entry", func() {
			var buf bytes.Buffer
			tw := tar.NewWriter(&buf)
			h.AssertNil(t, archive.WriteDirToTar(tw, src, "", 0, 0, -1))
			h.AssertNil(t, tw.Close())

			_, _, err := archive.ReadTarEntry(&buf, "nope")
			h.AssertErrorIs(t, err, archive.ErrEntryNotExist)
		})
	})
}
