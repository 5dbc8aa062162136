package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDescriptor(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDescriptor() error {
	if !isXMLName(c.Descriptor.FileTag) {
		return fmt.Errorf("descriptor.file_tag %q is not a valid element name", c.Descriptor.FileTag)
	}
	if strings.TrimSpace(c.Descriptor.EntryIndent) != "" {
		return errors.New("descriptor.entry_indent must contain only whitespace")
	}
	if strings.TrimSpace(c.Descriptor.ClosingIndent) != "" {
		return errors.New("descriptor.closing_indent must contain only whitespace")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// isXMLName reports whether name parses as a single start tag name.
func isXMLName(name string) bool {
	if name == "" || strings.ContainsAny(name, " \t\r\n<>/=\"'&") {
		return false
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<" + name + "/>"); err != nil {
		return false
	}
	root := doc.Root()
	return root != nil && root.FullTag() == name
}
