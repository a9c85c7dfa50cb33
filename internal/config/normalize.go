package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBinaries()
	c.normalizeEncoding()
	c.normalizeScheduler()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	roots := make([]string, 0, len(c.Paths.LibraryRoots))
	for _, root := range c.Paths.LibraryRoots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("paths.library_roots: %w", err)
		}
		roots = append(roots, expanded)
	}
	c.Paths.LibraryRoots = roots

	var err error
	if strings.TrimSpace(c.Paths.JobStateDir) == "" {
		c.Paths.JobStateDir = defaultJobStateDir
	}
	if c.Paths.JobStateDir, err = expandPath(c.Paths.JobStateDir); err != nil {
		return fmt.Errorf("paths.job_state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempOutputDir) != "" {
		if c.Paths.TempOutputDir, err = expandPath(c.Paths.TempOutputDir); err != nil {
			return fmt.Errorf("paths.temp_output_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeBinaries() {
	c.Binaries.FFmpeg = strings.TrimSpace(c.Binaries.FFmpeg)
	if c.Binaries.FFmpeg == "" {
		c.Binaries.FFmpeg = defaultFFmpegBinary
	}
	c.Binaries.FFprobe = strings.TrimSpace(c.Binaries.FFprobe)
	if c.Binaries.FFprobe == "" {
		c.Binaries.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeEncoding() {
	if c.Encoding.MinSourceBytes <= 0 {
		c.Encoding.MinSourceBytes = defaultMinSourceBytes
	}
	if c.Encoding.MaxSizeRatio <= 0 {
		c.Encoding.MaxSizeRatio = defaultMaxSizeRatio
	}
	c.Encoding.QualityTier = strings.ToLower(strings.TrimSpace(c.Encoding.QualityTier))
	switch c.Encoding.QualityTier {
	case "high", "very_high":
	default:
		c.Encoding.QualityTier = defaultQualityTier
	}
	c.Encoding.PreferredEncoder = strings.ToLower(strings.TrimSpace(c.Encoding.PreferredEncoder))
	switch c.Encoding.PreferredEncoder {
	case "primary", "secondary", "tertiary":
	default:
		c.Encoding.PreferredEncoder = defaultPreferredEncoder
	}
}

func (c *Config) normalizeScheduler() {
	if c.Scheduler.ScanIntervalSeconds <= 0 {
		c.Scheduler.ScanIntervalSeconds = defaultScanIntervalSeconds
	}
	if c.Scheduler.MaxConcurrentJobs <= 0 {
		c.Scheduler.MaxConcurrentJobs = defaultMaxConcurrentJobs
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "auto":
		c.Logging.Format = "auto"
	case "console", "json":
	default:
		c.Logging.Format = "auto"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
