package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateScanner(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCompanies(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MinThreshold < 0 || c.Matching.MinThreshold > 100 {
		return errors.New("matching.min_threshold must be between 0 and 100")
	}
	if c.Matching.FilenameBonus < 0 {
		return errors.New("matching.filename_bonus must not be negative")
	}
	if c.Matching.PathPenalty < 0 {
		return errors.New("matching.path_penalty must not be negative")
	}
	return nil
}

func (c *Config) validateScanner() error {
	if c.Scanner.MaxFileSizeMB < 0 {
		return errors.New("scanner.max_file_size_mb must not be negative")
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

func (c *Config) validateCompanies() error {
	seen := make(map[string]struct{}, len(c.Companies))
	for i, company := range c.Companies {
		name := strings.TrimSpace(company.Name)
		if name == "" {
			return fmt.Errorf("companies[%d]: name must be set", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("companies: duplicate name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
