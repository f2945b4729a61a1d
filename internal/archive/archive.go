// Package archive streams directories as tar archives, the form the Docker
// daemon expects image build contexts in.
package archive

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// NormalizedDateTime is the modification time of every archived entry, so
// identical contexts produce identical archives.
var NormalizedDateTime = time.Date(1980, time.January, 1, 0, 0, 1, 0, time.UTC)

var ErrEntryNotExist = errors.New("not exist")

// ReadDirAsTar streams srcDir as a tar archive rooted at basePath. Entries
// are owned by uid:gid. A mode of -1 keeps the file modes.
func ReadDirAsTar(srcDir, basePath string, uid, gid int, mode int64) io.ReadCloser {
	r, w := io.Pipe()
	go func() {
		var err error
		defer func() {
			w.CloseWithError(err)
		}()

		tw := tar.NewWriter(w)
		defer func() {
			// only close if no errors have occurred
			if err == nil {
				err = tw.Close()
			}
		}()

		err = WriteDirToTar(tw, srcDir, basePath, uid, gid, mode)
	}()
	return r
}

func WriteDirToTar(tw *tar.Writer, srcDir, basePath string, uid, gid int, mode int64) error {
	return filepath.Walk(srcDir, func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if fi.Mode()&(os.ModeSocket|os.ModeNamedPipe|os.ModeDevice) != 0 {
			return nil
		}

		relPath, err := filepath.Rel(srcDir, file)
		if err != nil {
			return err
		} else if relPath == "." {
			return nil
		}

		link := ""
		if fi.Mode()&os.ModeSymlink != 0 {
			if link, err = os.Readlink(file); err != nil {
				return err
			}
		}

		header, err := tar.FileInfoHeader(fi, link)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(filepath.Join(basePath, relPath))
		finalizeHeader(header, uid, gid, mode)

		if err := tw.WriteHeader(header); err != nil {
			return errors.Wrapf(err, "writing tar header for %s", relPath)
		}

		if !fi.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
}

// ReadTarEntry returns the first entry whose name contains entryPath.
func ReadTarEntry(rc io.Reader, entryPath string) (*tar.Header, []byte, error) {
	tr := tar.NewReader(rc)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to get next tar entry")
		}

		if strings.Contains(header.Name, entryPath) {
			buf, err := io.ReadAll(tr)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "failed to read contents of '%s'", entryPath)
			}

			return header, buf, nil
		}
	}

	return nil, nil, errors.Wrapf(ErrEntryNotExist, "could not find entry path '%s'", entryPath)
}

func finalizeHeader(header *tar.Header, uid, gid int, mode int64) {
	if mode != -1 && header.Typeflag != tar.TypeSymlink {
		header.Mode = mode
	}
	header.ModTime = NormalizedDateTime
	header.Uid = uid
	header.Gid = gid
	header.Uname = ""
	header.Gname = ""
}
