package build

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// DriverType names a build driver implementation. The set is closed: every
// switch over it must handle all values.
type DriverType string

const (
	DriverBare   DriverType = "bare"
	DriverDocker DriverType = "docker"
)

// DriverTypes lists every supported driver.
var DriverTypes = []DriverType{DriverBare, DriverDocker}

var (
	// ErrPathOutsideBuildRoot is returned when a driver is asked to work in a
	// directory it cannot reach.
	ErrPathOutsideBuildRoot = errors.New("path is not inside the build root")

	// ErrUnknownDriver is returned for driver names outside DriverTypes.
	ErrUnknownDriver = errors.New("unknown build driver")
)

func ParseDriverType(value string) (DriverType, error) {
	for _, d := range DriverTypes {
		if string(d) == strings.ToLower(strings.TrimSpace(value)) {
			return d, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownDriver, "%q (expected one of %s)", value, driverNames())
}

func driverNames() string {
	names := make([]string, 0, len(DriverTypes))
	for _, d := range DriverTypes {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

func (d DriverType) String() string {
	return string(d)
}

// Set implements pflag.Value.
func (d *DriverType) Set(value string) error {
	parsed, err := ParseDriverType(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Type implements pflag.Value.
func (d *DriverType) Type() string {
	return "driver"
}

func (d DriverType) MarshalText() ([]byte, error) {
	if _, err := ParseDriverType(string(d)); err != nil {
		return nil, err
	}
	return []byte(d), nil
}

func (d *DriverType) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

// Driver executes build commands in an isolated environment.
type Driver interface {
	// Type identifies the implementation, so it can be reconstructed from metadata.
	Type() DriverType

	// RunCommand runs argv in workDir, streaming its output. workDir is a host
	// path inside the build root. requiresRoot asks for privilege escalation
	// when the execution identity is not already privileged.
	RunCommand(ctx context.Context, argv []string, workDir string, requiresRoot bool) error

	// InteractiveShell attaches the current terminal to a shell inside the
	// build environment and blocks until it exits.
	InteractiveShell(ctx context.Context) error

	// Cleanup releases backend resources. It is idempotent and only logs failures.
	Cleanup(ctx context.Context)

	// Metadata returns what is needed to reconstruct an equivalent driver
	// from another process.
	Metadata() map[string]string
}

// ExecutionError reports a command that ran but did not succeed.
type ExecutionError struct {
	Command  []string
	ExitCode int
	Signal   string
}

func (e *ExecutionError) Error() string {
	cmd := strings.Join(e.Command, " ")
	if e.Signal != "" {
		return fmt.Sprintf("command '%s' was terminated by signal %s", cmd, e.Signal)
	}
	return fmt.Sprintf("command '%s' failed with exit code %d", cmd, e.ExitCode)
}
