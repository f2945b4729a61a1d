// Package config loads debmagic's layered TOML configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/pkg/errors"

	"github.com/debmagic/debmagic/internal/style"
)

const (
	DefaultTempBuildDir       = "/tmp/debmagic"
	DefaultDistro             = "debian"
	DefaultDistroVersion      = "forky"
	DefaultAttachPollInterval = 100 * time.Millisecond

	appName  = "debmagic"
	fileName = "config.toml"
)

type Config struct {
	TempBuildDir       string       `toml:"temp-build-dir"`
	DryRun             bool         `toml:"dry-run"`
	Distro             string       `toml:"distro"`
	DistroVersion      string       `toml:"distro-version"`
	AttachPollInterval Duration     `toml:"attach-poll-interval"`
	AttachMaxWait      Duration     `toml:"attach-max-wait"`
	Driver             DriverConfig `toml:"driver"`
}

type DriverConfig struct {
	Persistent bool         `toml:"persistent"`
	Docker     DockerConfig `toml:"docker"`
	Bare       BareConfig   `toml:"bare"`
}

type DockerConfig struct {
	BaseImage string `toml:"base-image"`
	MountPath string `toml:"mount-path"`
	User      string `toml:"user"`
}

type BareConfig struct {
	PrivilegeWrapper string `toml:"privilege-wrapper"`
	Shell            string `toml:"shell"`
}

// Duration is a time.Duration written as a Go duration string, e.g. "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %s", style.Symbol(string(text)))
	}
	if parsed < 0 {
		return errors.Errorf("duration %s must not be negative", style.Symbol(string(text)))
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func Default() Config {
	return Config{
		TempBuildDir:       DefaultTempBuildDir,
		Distro:             DefaultDistro,
		DistroVersion:      DefaultDistroVersion,
		AttachPollInterval: Duration{DefaultAttachPollInterval},
	}
}

// DefaultPath is the per-user config file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, fileName)
}

// Load reads the defaults, then the per-user config file if it exists, then
// explicitPath if set. Later files override the keys they set.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	if err := cfg.merge(DefaultPath(), true); err != nil {
		return Config{}, err
	}
	if explicitPath != "" {
		if err := cfg.merge(explicitPath, false); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(path string, optional bool) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "reading config %s", style.Symbol(path))
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("%s in %s", FormatUndecodedKeys(undecoded), style.Symbol(path))
	}
	return nil
}

func (c *Config) Validate() error {
	if c.TempBuildDir == "" {
		return errors.Errorf("%s must not be empty", style.Symbol("temp-build-dir"))
	}
	abs, err := filepath.Abs(c.TempBuildDir)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", style.Symbol("temp-build-dir"))
	}
	c.TempBuildDir = abs

	if c.Distro == "" || c.DistroVersion == "" {
		return errors.Errorf("%s and %s must not be empty", style.Symbol("distro"), style.Symbol("distro-version"))
	}
	if c.AttachPollInterval.Duration <= 0 {
		return errors.Errorf("%s must be positive", style.Symbol("attach-poll-interval"))
	}
	return nil
}
