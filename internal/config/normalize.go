package config

import "strings"

func (c *Config) normalize() {
	c.normalizeDescriptor()
	c.normalizeLogging()
}

func (c *Config) normalizeDescriptor() {
	if c.Descriptor.Prefix == "" {
		c.Descriptor.Prefix = defaultPrefix
	}
	c.Descriptor.FileTag = strings.TrimSpace(c.Descriptor.FileTag)
	if c.Descriptor.FileTag == "" {
		c.Descriptor.FileTag = defaultFileTag
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
