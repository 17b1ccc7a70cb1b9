package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/draft/errors"
	"github.com/grovetools/draft/pkg/paths"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// configFileNames lists recognized config file names in resolution order.
var configFileNames = []string{"draft.yml", "draft.yaml", "draft.toml"}

// Load reads and parses a draft configuration file.
func Load(path string) (*Config, error) {
	cfg, err := loadLayer(path)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

// LoadFromBytes parses configuration data. ext selects the format
// (".toml" for TOML, anything else parses as YAML).
func LoadFromBytes(data []byte, ext string) (*Config, error) {
	cfg, err := parse(data, ext)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

// loadLayer reads and parses one config layer without applying defaults.
// Layers stay raw so that a nil section means "absent" to mergeConfigs;
// defaults are applied exactly once, to the merged result.
func loadLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return parse(data, filepath.Ext(path))
}

func parse(data []byte, ext string) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	var err error
	if ext == ".toml" {
		err = unmarshalTOML([]byte(expanded), &cfg)
	} else {
		err = yaml.Unmarshal([]byte(expanded), &cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse config file")
	}

	return &cfg, nil
}

// LoadDefault finds and loads the configuration with hierarchical merging:
// 1. Global config (~/.config/draft/draft.yml) - base layer
// 2. Project config (draft.yml) - overrides global
// 3. Local override (draft.override.yml) - overrides all
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the
// given directory.
func LoadFrom(startDir string) (*Config, error) {
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	var final *Config

	// 1. Global config is optional.
	if globalPath := globalConfigPath(); globalPath != "" {
		if global, err := loadLayer(globalPath); err == nil {
			final = global
		}
	}

	// 2. Project config.
	project, err := loadLayer(projectPath)
	if err != nil {
		return nil, err
	}
	if final == nil {
		final = project
	} else {
		final = mergeConfigs(final, project)
	}

	// 3. Local overrides.
	dir := filepath.Dir(projectPath)
	for _, name := range []string{"draft.override.yml", "draft.override.yaml"} {
		overridePath := filepath.Join(dir, name)
		if _, err := os.Stat(overridePath); err != nil {
			continue
		}
		override, err := loadLayer(overridePath)
		if err != nil {
			return nil, err
		}
		final = mergeConfigs(final, override)
	}

	final.SetDefaults()
	return final, nil
}

// FindConfigFile walks from startDir toward the filesystem root looking for
// a recognized config file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, configFileNames[0]))
		}
		dir = parent
	}
}

// globalConfigPath returns the XDG global config file path, or "" if no
// global config exists.
func globalConfigPath() string {
	configDir := paths.ConfigDir()
	if configDir == "" {
		return ""
	}
	for _, name := range configFileNames {
		candidate := filepath.Join(configDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// mergeConfigs merges override configuration into base. Scalars and slices
// replace when set in the override; extension maps merge key-wise.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Version != "" {
		result.Version = override.Version
	}
	if len(override.Workspaces) > 0 {
		result.Workspaces = override.Workspaces
	}
	if override.AutoSave != nil {
		result.AutoSave = override.AutoSave
	}
	if override.Daemon != nil {
		result.Daemon = override.Daemon
	}
	if override.Editor != nil {
		result.Editor = override.Editor
	}

	if len(override.Extensions) > 0 {
		merged := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for k, v := range base.Extensions {
			merged[k] = v
		}
		for k, v := range override.Extensions {
			merged[k] = v
		}
		result.Extensions = merged
	}

	return &result
}

// expandEnvVars replaces ${VAR} references with environment values.
// Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(name)
	})
}
