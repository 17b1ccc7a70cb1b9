package logging

// FormatConfig controls the text formatter's output.
type FormatConfig struct {
	Preset             string `yaml:"preset,omitempty"`               // "", "json", or "simple"
	DisableTimestamp   bool   `yaml:"disable_timestamp,omitempty"`
	DisableComponent   bool   `yaml:"disable_component,omitempty"`
	StructuredToStderr string `yaml:"structured_to_stderr,omitempty"` // "auto", "always", or "never"
}

// FileConfig controls the file sink.
type FileConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// Config is the logging extension section of draft.yml.
type Config struct {
	Level        string       `yaml:"level,omitempty"`
	ReportCaller bool         `yaml:"report_caller,omitempty"`
	Format       FormatConfig `yaml:"format,omitempty"`
	File         FileConfig   `yaml:"file,omitempty"`
}
