// Package config handles application configuration and command-line argument parsing.
package config

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/joe/rom-sync/pkg/devicefs"
)

// DefaultMediaDir is the fixed name of the per-system media subfolder.
const DefaultMediaDir = ".media"

// Config holds the application configuration.
type Config struct {
	LocalRoot       string `arg:"-l,--local" help:"Local ROM library root directory"`
	DeviceTarget    string `arg:"-d,--device" help:"Device target: sftp://user@host[:port]/path or a local directory"`
	MediaDir        string `arg:"--media-dir" default:".media" help:"Name of the per-system media subfolder"`
	ExcludePattern  string `arg:"-x,--exclude" help:"Glob pattern of file names to skip during scanning (e.g. '*.sav')"`
	InteractiveMode bool   `arg:"-i,--interactive" help:"Run in interactive mode"`
}

// Description returns the program description for go-arg.
func (Config) Description() string {
	return "Synchronize a local ROM library onto a handheld device over SFTP"
}

// Version returns the version string for go-arg.
func (Config) Version() string {
	return "rom-sync 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags() (*Config, error) {
	cfg := &Config{
		MediaDir: DefaultMediaDir,
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config.
func PostProcessConfig(cfg *Config) (*Config, error) {
	// If no paths provided, default to interactive mode
	if cfg.LocalRoot == "" && cfg.DeviceTarget == "" {
		cfg.InteractiveMode = true
	}

	if cfg.MediaDir == "" {
		cfg.MediaDir = DefaultMediaDir
	}

	// Validate paths if not in interactive mode
	if !cfg.InteractiveMode {
		if err := cfg.ValidateTargets(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ValidateTargets validates that the local root and device target are usable.
func (cfg *Config) ValidateTargets() error {
	if cfg.LocalRoot == "" {
		return fmt.Errorf("local ROM library root is required") //nolint:err113,perfsprint // Flag validation error
	}

	if cfg.DeviceTarget == "" {
		return fmt.Errorf("device target is required") //nolint:err113,perfsprint // Flag validation error
	}

	// Check the local root exists and is a directory
	info, err := os.Stat(cfg.LocalRoot)
	if os.IsNotExist(err) {
		return fmt.Errorf("local root does not exist: %s", cfg.LocalRoot) //nolint:err113 // Flag validation with actual path
	}
	if err != nil {
		return fmt.Errorf("cannot access local root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("local root is not a directory: %s", cfg.LocalRoot) //nolint:err113 // Flag validation with actual path
	}

	// Check the device target parses (and exists when it's a directory)
	target, err := devicefs.ParseTarget(cfg.DeviceTarget)
	if err != nil {
		return fmt.Errorf("invalid device target: %w", err)
	}

	if !target.IsRemote {
		info, err := os.Stat(target.LocalPath)
		if os.IsNotExist(err) {
			return fmt.Errorf("device directory does not exist: %s", target.LocalPath) //nolint:err113 // Flag validation with actual path
		}
		if err != nil {
			return fmt.Errorf("cannot access device directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("device target is not a directory: %s", target.LocalPath) //nolint:err113 // Flag validation with actual path
		}
	}

	return nil
}
