package build

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
)

// MetadataFileName is the name of the metadata document inside a build root.
const MetadataFileName = "build.json"

const defaultLockRetryDelay = 10 * time.Millisecond

// ErrNoMetadata is returned when a build root has no metadata document.
var ErrNoMetadata = errors.New("no build metadata found")

// Metadata is the persisted state of a build. It is the single source of
// truth for reconstructing a driver from another process.
type Metadata struct {
	Driver               DriverType        `json:"driver"`
	Config               Config            `json:"config"`
	DriverMetadata       map[string]string `json:"driver_metadata"`
	NumProcessesAttached int               `json:"num_processes_attached"`
}

func MetadataPath(buildRoot string) string {
	return filepath.Join(buildRoot, MetadataFileName)
}

// Store guards the metadata document of one build root. Every access goes
// through an exclusive advisory lock on the document, so it is safe to use
// from several processes at once.
type Store struct {
	path           string
	lockRetryDelay time.Duration
}

func NewStore(buildRoot string) *Store {
	return &Store{
		path:           MetadataPath(buildRoot),
		lockRetryDelay: defaultLockRetryDelay,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Create writes a fresh document for a new build. The attach counter always
// starts at zero.
func (s *Store) Create(md Metadata) error {
	md.NumProcessesAttached = 0
	if md.DriverMetadata == nil {
		md.DriverMetadata = map[string]string{}
	}

	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serializing build metadata")
	}

	if err := renameio.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing build metadata to %s", s.path)
	}
	return nil
}

// Update runs fn against the current document while holding the lock and
// persists the result. If fn returns an error nothing is written. The lock
// is released on every path.
func (s *Store) Update(ctx context.Context, fn func(md *Metadata) error) (Metadata, error) {
	return s.transact(ctx, true, fn)
}

// Read returns the current document.
func (s *Store) Read(ctx context.Context) (Metadata, error) {
	return s.transact(ctx, false, func(*Metadata) error { return nil })
}

// Attach registers one more attached process.
func (s *Store) Attach(ctx context.Context) (Metadata, error) {
	return s.Update(ctx, func(md *Metadata) error {
		md.NumProcessesAttached++
		return nil
	})
}

// Detach unregisters an attached process. The counter never goes below zero.
func (s *Store) Detach(ctx context.Context) (Metadata, error) {
	return s.Update(ctx, func(md *Metadata) error {
		if md.NumProcessesAttached > 0 {
			md.NumProcessesAttached--
		} else {
			md.NumProcessesAttached = 0
		}
		return nil
	})
}

// AttachedCount returns the number of processes currently attached.
func (s *Store) AttachedCount(ctx context.Context) (int, error) {
	md, err := s.Read(ctx)
	if err != nil {
		return 0, err
	}
	return md.NumProcessesAttached, nil
}

func (s *Store) transact(ctx context.Context, write bool, fn func(md *Metadata) error) (md Metadata, err error) {
	// the lock would create a missing file, so check first
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, errors.Wrapf(ErrNoMetadata, "reading %s", s.path)
		}
		return Metadata{}, errors.Wrapf(err, "reading %s", s.path)
	}

	lock := flock.New(s.path)
	locked, err := lock.TryLockContext(ctx, s.lockRetryDelay)
	if err != nil {
		return Metadata{}, errors.Wrapf(err, "locking %s", s.path)
	}
	if !locked {
		return Metadata{}, errors.Errorf("could not lock %s", s.path)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil && err == nil {
			err = errors.Wrapf(unlockErr, "unlocking %s", s.path)
		}
	}()

	file, err := os.OpenFile(s.path, os.O_RDWR, 0)
	if err != nil {
		return Metadata{}, errors.Wrapf(err, "opening %s", s.path)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Metadata{}, errors.Wrapf(err, "reading %s", s.path)
	}
	if err := json.Unmarshal(data, &md); err != nil {
		return Metadata{}, errors.Wrapf(err, "failed to read build metadata from %s - invalid json", s.path)
	}

	if err := fn(&md); err != nil {
		return Metadata{}, err
	}
	if !write {
		return md, nil
	}

	out, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return Metadata{}, errors.Wrap(err, "serializing build metadata")
	}
	if err := file.Truncate(0); err != nil {
		return Metadata{}, errors.Wrapf(err, "truncating %s", s.path)
	}
	if _, err := file.WriteAt(out, 0); err != nil {
		return Metadata{}, errors.Wrapf(err, "writing %s", s.path)
	}
	if err := file.Sync(); err != nil {
		return Metadata{}, errors.Wrapf(err, "syncing %s", s.path)
	}

	return md, nil
}
