package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
)

// AutoSaveMode names the document save policy.
type AutoSaveMode string

const (
	// AutoSaveOff disables auto-save entirely.
	AutoSaveOff AutoSaveMode = "off"
	// AutoSaveAfterDelay saves dirty documents after the configured delay.
	AutoSaveAfterDelay AutoSaveMode = "after-delay"
	// AutoSaveShortDelay saves shortly after every edit. Dirty-state
	// consumers treat copies under this mode as transient and suppress
	// indicator updates for them.
	AutoSaveShortDelay AutoSaveMode = "short-delay"
)

// ShortDelayThresholdMs is the delay at or below which after-delay
// auto-save behaves as short-delay.
const ShortDelayThresholdMs = 1000

// AutoSaveConfig holds the document save policy.
type AutoSaveConfig struct {
	Mode    AutoSaveMode `yaml:"mode,omitempty" toml:"mode,omitempty" jsonschema:"description=Auto-save mode: off, after-delay, or short-delay"`
	DelayMs int          `yaml:"delay_ms,omitempty" toml:"delay_ms,omitempty" jsonschema:"description=Auto-save delay in milliseconds (after-delay mode)"`
}

// EffectiveMode resolves the configured mode, folding a small after-delay
// value into short-delay.
func (a *AutoSaveConfig) EffectiveMode() AutoSaveMode {
	if a == nil || a.Mode == "" {
		return AutoSaveOff
	}
	if a.Mode == AutoSaveAfterDelay && a.DelayMs > 0 && a.DelayMs <= ShortDelayThresholdMs {
		return AutoSaveShortDelay
	}
	return a.Mode
}

// DaemonConfig holds settings for the draft daemon (draftd).
type DaemonConfig struct {
	DebounceMs int `yaml:"debounce_ms,omitempty" toml:"debounce_ms,omitempty" jsonschema:"description=Debounce window for file change events in milliseconds"`
}

// EditorConfig holds settings for the editor host connection.
type EditorConfig struct {
	NvimSocket string `yaml:"nvim_socket,omitempty" toml:"nvim_socket,omitempty" jsonschema:"description=Path to a running Neovim RPC socket; empty disables editor integration"`
}

// Config is the top-level draft.yml configuration.
type Config struct {
	Name       string   `yaml:"name,omitempty" toml:"name,omitempty" jsonschema:"description=Name of the project"`
	Version    string   `yaml:"version" toml:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`
	Workspaces []string `yaml:"workspaces,omitempty" toml:"workspaces,omitempty" jsonschema:"description=Directories whose files are tracked for unsaved changes"`

	AutoSave *AutoSaveConfig `yaml:"autosave,omitempty" toml:"autosave,omitempty" jsonschema:"description=Document save policy"`
	Daemon   *DaemonConfig   `yaml:"daemon,omitempty" toml:"daemon,omitempty" jsonschema:"description=Configuration for the draft daemon"`
	Editor   *EditorConfig   `yaml:"editor,omitempty" toml:"editor,omitempty" jsonschema:"description=Editor host connection settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// SetDefaults fills in defaults for unset fields.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.AutoSave == nil {
		c.AutoSave = &AutoSaveConfig{Mode: AutoSaveOff}
	}
	if c.Daemon == nil {
		c.Daemon = &DaemonConfig{}
	}
	if c.Daemon.DebounceMs <= 0 {
		c.Daemon.DebounceMs = 100
	}
	if c.Editor == nil {
		c.Editor = &EditorConfig{}
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded draft.yml into the provided target struct. The target must be a
// pointer. This provides a type-safe way for extensions to access their
// custom configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// Absent keys leave the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// unmarshalTOML parses TOML data into a Config. TOML has no inline map
// support, so unknown top-level keys are collected into Extensions by a
// second generic pass.
func unmarshalTOML(data []byte, c *Config) error {
	if err := toml.Unmarshal(data, c); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return err
	}
	known := map[string]bool{
		"name": true, "version": true, "workspaces": true,
		"autosave": true, "daemon": true, "editor": true,
	}
	for key, value := range raw {
		if known[key] {
			continue
		}
		if c.Extensions == nil {
			c.Extensions = make(map[string]interface{})
		}
		c.Extensions[key] = value
	}
	return nil
}
