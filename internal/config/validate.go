package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDanmu2Ass(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateDanmu2Ass() error {
	if c.Danmu2Ass.FloatPercentage > 1 {
		return errors.New("danmu2ass.float_percentage must be between 0 and 1")
	}
	if c.Danmu2Ass.Alpha > 1 {
		return errors.New("danmu2ass.alpha must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateMerge() error {
	if c.Merge.SubtitleFontSize > 200 {
		return fmt.Errorf("merge.subtitle_font_size %d is out of range", c.Merge.SubtitleFontSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
