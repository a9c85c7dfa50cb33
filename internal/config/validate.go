package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Paths.LibraryRoots) == 0 {
		return errors.New("paths.library_roots must list at least one directory")
	}
	if c.Paths.JobStateDir == "" {
		return errors.New("paths.job_state_dir must be set")
	}
	if c.Encoding.MinSourceBytes <= 0 {
		return errors.New("encoding.min_source_bytes must be positive")
	}
	if c.Encoding.MaxSizeRatio <= 0 || c.Encoding.MaxSizeRatio > 1 {
		return errors.New("encoding.max_size_ratio must be in (0, 1]")
	}
	switch c.Encoding.QualityTier {
	case "high", "very_high":
	default:
		return fmt.Errorf("encoding.quality_tier %q is not one of high, very_high", c.Encoding.QualityTier)
	}
	switch c.Encoding.PreferredEncoder {
	case "primary", "secondary", "tertiary":
	default:
		return fmt.Errorf("encoding.preferred_encoder %q is not one of primary, secondary, tertiary", c.Encoding.PreferredEncoder)
	}
	if c.Scheduler.ScanIntervalSeconds <= 0 {
		return errors.New("scheduler.scan_interval_seconds must be positive")
	}
	if c.Scheduler.MaxConcurrentJobs <= 0 {
		return errors.New("scheduler.max_concurrent_jobs must be positive")
	}
	return nil
}
