package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSnipeIT(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLabels()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSnipeIT() error {
	c.SnipeIT.URL = strings.TrimRight(strings.TrimSpace(c.SnipeIT.URL), "/")
	c.SnipeIT.APIKey = strings.TrimSpace(c.SnipeIT.APIKey)
	if c.SnipeIT.APIKey == "" {
		if value, ok := os.LookupEnv("SNIPEIT_API_KEY"); ok {
			c.SnipeIT.APIKey = strings.TrimSpace(value)
		}
	}
	if c.SnipeIT.URL == "" {
		if value, ok := os.LookupEnv("SNIPEIT_URL"); ok {
			c.SnipeIT.URL = strings.TrimRight(strings.TrimSpace(value), "/")
		}
	}
	if c.SnipeIT.RequestTimeout <= 0 {
		c.SnipeIT.RequestTimeout = defaultRequestTimeout
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.TemplatePath) == "" {
		c.Paths.TemplatePath = defaultTemplatePath
	}
	if c.Paths.TemplatePath, err = expandPath(c.Paths.TemplatePath); err != nil {
		return fmt.Errorf("paths.template_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputPath) == "" {
		c.Paths.OutputPath = defaultOutputPath
	}
	if c.Paths.OutputPath, err = expandPath(c.Paths.OutputPath); err != nil {
		return fmt.Errorf("paths.output_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLabels() {
	c.Labels.ItemType = strings.ToLower(strings.TrimSpace(c.Labels.ItemType))
	if c.Labels.ItemType == "" {
		c.Labels.ItemType = defaultItemType
	}
	c.Labels.QRTarget = strings.ToLower(strings.TrimSpace(c.Labels.QRTarget))
	if c.Labels.QRTarget == "" {
		c.Labels.QRTarget = defaultQRTarget
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
