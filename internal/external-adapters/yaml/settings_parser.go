// Package yaml provides YAML-based settings parsing and loading.
package yaml

import (
	"fmt"
	"os"
	"time"

	"github.com/ochairo/distpatch/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlSettings represents the raw YAML structure
type yamlSettings struct {
	Rewriter yamlRewriter `yaml:"rewriter"`
	Verify   yamlVerify   `yaml:"verify"`
}

type yamlRewriter struct {
	Executable string `yaml:"executable"`
	Subcommand string `yaml:"subcommand"`
	Timeout    string `yaml:"timeout"`
}

type yamlVerify struct {
	Enabled bool `yaml:"enabled"`
	// Pointer distinguishes "absent" from an explicit false
	Checksum        *bool    `yaml:"checksum"`
	SignatureSuffix string   `yaml:"signature_suffix"`
	GPGKeyFiles     []string `yaml:"gpg_key_files"`
	GPGKeysURL      string   `yaml:"gpg_keys_url"`
	FetchTimeout    string   `yaml:"fetch_timeout"`
}

// SettingsParser parses YAML settings files
type SettingsParser struct{}

// NewSettingsParser creates a new YAML parser
func NewSettingsParser() *SettingsParser {
	return &SettingsParser{}
}

// ParseFile parses a YAML settings file into a Settings entity
func (p *SettingsParser) ParseFile(filePath string) (entities.Settings, error) {
	//nolint:gosec // G304: filePath is the settings path from the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return entities.Settings{}, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Settings entity, keeping built-in defaults
// for anything left unset
func (p *SettingsParser) Parse(data []byte) (entities.Settings, error) {
	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return entities.Settings{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	settings := entities.DefaultSettings()

	if raw.Rewriter.Executable != "" {
		settings.Rewriter.Executable = raw.Rewriter.Executable
	}
	if raw.Rewriter.Subcommand != "" {
		settings.Rewriter.Subcommand = raw.Rewriter.Subcommand
	}
	timeout, err := parseDuration("rewriter.timeout", raw.Rewriter.Timeout)
	if err != nil {
		return entities.Settings{}, err
	}
	if timeout > 0 {
		settings.Rewriter.Timeout = timeout
	}

	settings.Verify.Enabled = raw.Verify.Enabled
	if raw.Verify.Checksum != nil {
		settings.Verify.Checksum = *raw.Verify.Checksum
	}
	if raw.Verify.SignatureSuffix != "" {
		settings.Verify.SignatureSuffix = raw.Verify.SignatureSuffix
	}
	settings.Verify.GPGKeyFiles = raw.Verify.GPGKeyFiles
	settings.Verify.GPGKeysURL = raw.Verify.GPGKeysURL
	fetchTimeout, err := parseDuration("verify.fetch_timeout", raw.Verify.FetchTimeout)
	if err != nil {
		return entities.Settings{}, err
	}
	if fetchTimeout > 0 {
		settings.Verify.FetchTimeout = fetchTimeout
	}

	if settings.Verify.Enabled && !settings.Verify.Checksum && !settings.Verify.HasKeySource() {
		return entities.Settings{}, fmt.Errorf("verification is enabled but has neither checksum comparison nor a key source")
	}

	return settings, nil
}

// parseDuration reads a Go duration string such as "30s" or "5m"
func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: duration must not be negative", field)
	}
	return d, nil
}
