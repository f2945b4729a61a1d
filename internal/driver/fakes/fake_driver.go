package fakes

import (
	"context"
	"sync"

	"github.com/debmagic/debmagic/internal/build"
)

type Command struct {
	Argv         []string
	WorkDir      string
	RequiresRoot bool
}

type FakeDriver struct {
	Kind           build.DriverType
	Config         build.Config
	DriverMetadata map[string]string

	// RunHook is called for every command. Its error is the command's result.
	RunHook func(cmd Command) error
	// ShellHook is called for every interactive shell.
	ShellHook func() error
	// CleanupHook is called on every cleanup.
	CleanupHook func()

	mu           sync.Mutex
	Commands     []Command
	ShellCount   int
	CleanupCount int
}

func (f *FakeDriver) Type() build.DriverType {
	return f.Kind
}

func (f *FakeDriver) RunCommand(_ context.Context, argv []string, workDir string, requiresRoot bool) error {
	cmd := Command{Argv: argv, WorkDir: workDir, RequiresRoot: requiresRoot}
	f.mu.Lock()
	f.Commands = append(f.Commands, cmd)
	f.mu.Unlock()

	if f.RunHook != nil {
		return f.RunHook(cmd)
	}
	return nil
}

func (f *FakeDriver) InteractiveShell(context.Context) error {
	f.mu.Lock()
	f.ShellCount++
	f.mu.Unlock()

	if f.ShellHook != nil {
		return f.ShellHook()
	}
	return nil
}

func (f *FakeDriver) Cleanup(context.Context) {
	f.mu.Lock()
	f.CleanupCount++
	f.mu.Unlock()

	if f.CleanupHook != nil {
		f.CleanupHook()
	}
}

func (f *FakeDriver) Metadata() map[string]string {
	if f.DriverMetadata == nil {
		return map[string]string{}
	}
	return f.DriverMetadata
}
