package fakes

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

type FakeTerminal struct {
	In          io.Reader
	Out         *bytes.Buffer
	Err         *bytes.Buffer
	Interactive bool
	Width       int
	Height      int
	SizeErr     error

	mu           sync.Mutex
	RawCount     int
	RestoreCount int
}

func NewFakeTerminal(interactive bool) *FakeTerminal {
	return &FakeTerminal{
		In:          strings.NewReader(""),
		Out:         &bytes.Buffer{},
		Err:         &bytes.Buffer{},
		Interactive: interactive,
		Width:       80,
		Height:      24,
	}
}

func (f *FakeTerminal) Stdin() io.Reader    { return f.In }
func (f *FakeTerminal) Stdout() io.Writer   { return f.Out }
func (f *FakeTerminal) Stderr() io.Writer   { return f.Err }
func (f *FakeTerminal) IsInteractive() bool { return f.Interactive }

func (f *FakeTerminal) MakeRaw() (func() error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RawCount++
	return func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.RestoreCount++
		return nil
	}, nil
}

func (f *FakeTerminal) Size() (int, int, error) {
	return f.Width, f.Height, f.SizeErr
}
