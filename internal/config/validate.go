package config

import (
	"fmt"
	"slices"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("log.level must be one of debug|info|warn|error (got %q)", c.Log.Level)
	}
	if !slices.Contains([]string{"json", "text"}, c.Log.Format) {
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.Pipeline.validate(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := c.Retention.validate(); err != nil {
		return fmt.Errorf("retention: %w", err)
	}

	return nil
}

func (p *PipelineConfig) validate() error {
	if p.MaxScopeItems <= 0 {
		return fmt.Errorf("max_scope_items must be > 0 (got %d)", p.MaxScopeItems)
	}
	if p.MaxInsightChars <= 0 {
		return fmt.Errorf("max_insight_chars must be > 0 (got %d)", p.MaxInsightChars)
	}
	return nil
}

func (r *RetentionConfig) validate() error {
	if r.ArchiveAfter <= 0 {
		return fmt.Errorf("archive_after must be > 0 (got %v)", r.ArchiveAfter)
	}
	if r.PurgeEventsAfter <= 0 {
		return fmt.Errorf("purge_events_after must be > 0 (got %v)", r.PurgeEventsAfter)
	}
	return nil
}
