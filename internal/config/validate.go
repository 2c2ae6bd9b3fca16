package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateProject(); err != nil {
		return err
	}
	if c.History.UndoLimit < 0 {
		return errors.New("history.undo_limit must be zero (unlimited) or positive")
	}
	if c.Sampling.Workers <= 0 {
		return errors.New("sampling.workers must be positive")
	}
	return c.validateLogging()
}

func (c *Config) validateProject() error {
	if c.Project.FrameRate <= 0 || math.IsNaN(c.Project.FrameRate) || math.IsInf(c.Project.FrameRate, 0) {
		return fmt.Errorf("project.frame_rate must be a positive number, got %v", c.Project.FrameRate)
	}
	if c.Project.Width <= 0 || c.Project.Height <= 0 {
		return fmt.Errorf("project.width and project.height must be positive, got %dx%d", c.Project.Width, c.Project.Height)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
