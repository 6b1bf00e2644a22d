// Package config resolves the audit settings from the command line and an
// optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// DefaultCrawler is the crawler executable looked up when none is configured.
const DefaultCrawler = "muffet"

// Options holds the resolved settings of one run.
type Options struct {
	URL         string   // Site to audit
	Errors      []string // Error selector values ("all" or codes)
	Warnings    []string // Warning selector values ("all" or codes)
	Retry       bool     // Re-verify flagged links
	Crawler     string   // Crawler executable name or path
	CrawlerArgs []string // Extra crawler flags
	Format      string   // Output format
	Progress    bool     // Show the interactive progress view
	Verbose     bool     // Debug logging
}

// File is the YAML configuration file. Every field is optional; command-line
// flags take precedence.
type File struct {
	Errors      []string `yaml:"errors"`
	Warnings    []string `yaml:"warnings"`
	Retry       *bool    `yaml:"retry"`
	Crawler     string   `yaml:"crawler"`
	CrawlerArgs []string `yaml:"crawler_args"`
	Format      string   `yaml:"format"`
}

// Load parses a YAML configuration document.
func Load(data []byte) (*File, error) {
	file := &File{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return file, nil
}

// LoadFile reads and parses the YAML configuration file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	file, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Validate checks the resolved options.
func (o Options) Validate() error {
	switch o.Format {
	case FormatText, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("unknown format %q (want text, json or csv)", o.Format)
	}
	if o.Crawler == "" {
		return errors.New("crawler executable must not be empty")
	}
	return nil
}
