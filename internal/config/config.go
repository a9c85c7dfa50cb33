package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories avreap reads from and writes to.
type Paths struct {
	LibraryRoots  []string `toml:"library_roots"`
	JobStateDir   string   `toml:"job_state_dir"`
	TempOutputDir string   `toml:"temp_output_dir"`
	LogDir        string   `toml:"log_dir"`
}

// Binaries names the external encoder/prober executables. Defaults assume
// both are on PATH.
type Binaries struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Encoding contains the policy and codec-selection knobs that drive the
// classifier, policy, and command synthesizer.
type Encoding struct {
	MinSourceBytes      int64   `toml:"min_source_bytes"`
	MaxSizeRatio        float64 `toml:"max_size_ratio"`
	QualityTier         string  `toml:"quality_tier"` // "high" | "very_high"
	PreferredEncoder    string  `toml:"preferred_encoder"` // "primary" | "secondary" | "tertiary"
	KeepOriginal        bool    `toml:"keep_original"`
	WriteReasonSidecars bool    `toml:"write_reason_sidecars"`
}

// Scheduler contains the scan cadence and concurrency bound.
type Scheduler struct {
	ScanIntervalSeconds int `toml:"scan_interval_seconds"`
	MaxConcurrentJobs   int `toml:"max_concurrent_jobs"`
}

// Logging contains log output configuration.
type Logging struct {
	Format        string `toml:"format"` // "auto" | "console" | "json"
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates every knob the daemon and CLI need.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Binaries  Binaries  `toml:"binaries"`
	Encoding  Encoding  `toml:"encoding"`
	Scheduler Scheduler `toml:"scheduler"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/avreap/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, resolvedPath, exists, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, resolvedPath, exists, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/avreap/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("avreap.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the job state, temp output, and log
// directories. Library roots are never created: a missing library root is
// a configuration mistake the operator should notice, not paper over.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.JobStateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.TempOutputDir) != "" {
		if err := os.MkdirAll(c.Paths.TempOutputDir, 0o755); err != nil {
			return fmt.Errorf("create temp output directory %q: %w", c.Paths.TempOutputDir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
