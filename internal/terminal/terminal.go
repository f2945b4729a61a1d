// Package terminal wraps the standard streams of the process so that
// interactive behavior can be detected and faked.
package terminal

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Terminal is the set of streams a build talks to the user through.
type Terminal interface {
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer

	// IsInteractive reports whether both stdin and stdout are terminals.
	IsInteractive() bool

	// MakeRaw puts stdin into raw mode. The returned function restores it.
	MakeRaw() (restore func() error, err error)

	// Size returns the dimensions of stdout.
	Size() (width, height int, err error)
}

type fileTerminal struct {
	in, out, err *os.File
}

func New(in, out, errOut *os.File) Terminal {
	return &fileTerminal{in: in, out: out, err: errOut}
}

// Std returns the terminal of the current process.
func Std() Terminal {
	return New(os.Stdin, os.Stdout, os.Stderr)
}

func (t *fileTerminal) Stdin() io.Reader  { return t.in }
func (t *fileTerminal) Stdout() io.Writer { return t.out }
func (t *fileTerminal) Stderr() io.Writer { return t.err }

func (t *fileTerminal) IsInteractive() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

func (t *fileTerminal) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "setting terminal to raw mode")
	}
	return func() error {
		return term.Restore(fd, state)
	}, nil
}

func (t *fileTerminal) Size() (int, int, error) {
	return term.GetSize(int(t.out.Fd()))
}
