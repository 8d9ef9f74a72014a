package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/memfs/internal/util"
)

// Config contains runtime configuration values for the namespace and its front ends.
type Config struct {
	MountOptions

	LogLvl util.LogLevel // Internal log level (Default warn)
	// OverwriteOnCreate makes mkdir/touch replace an existing node of the same
	// name; when false they fail with a duplicate name error (Default true)
	OverwriteOnCreate bool
	Color             bool   // Styled shell output (Default true)
	Seed              string // Optional node definition file loaded at startup

	// NOTE: FUSE export settings, only used when the namespace is mounted:

	AttrTimeout  float64 // Attribute cache timeout in seconds (Default 1.0)
	EntryTimeout float64 // Directory entry cache timeout in seconds (Default 1.0)
	DirectIO     bool    // Whether to bypass page cache for file reads (Default true)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	LogLvl            *int     `yaml:"log_lvl,omitempty" json:"log_lvl,omitempty" toml:"log_lvl,omitempty"` // CLI verbosity 1-5
	OverwriteOnCreate *bool    `yaml:"overwrite_on_create,omitempty" json:"overwrite_on_create,omitempty" toml:"overwrite_on_create,omitempty"`
	Color             *bool    `yaml:"color,omitempty" json:"color,omitempty" toml:"color,omitempty"`
	Seed              *string  `yaml:"seed,omitempty" json:"seed,omitempty" toml:"seed,omitempty"`
	FsName            *string  `yaml:"fs_name,omitempty" json:"fs_name,omitempty" toml:"fs_name,omitempty"`
	Name              *string  `yaml:"name,omitempty" json:"name,omitempty" toml:"name,omitempty"`
	AttrTimeout       *float64 `yaml:"attr_timeout,omitempty" json:"attr_timeout,omitempty" toml:"attr_timeout,omitempty"`
	EntryTimeout      *float64 `yaml:"entry_timeout,omitempty" json:"entry_timeout,omitempty" toml:"entry_timeout,omitempty"`
	DirectIO          *bool    `yaml:"direct_io,omitempty" json:"direct_io,omitempty" toml:"direct_io,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		MountOptions: MountOptions{
			FsName: DefaultFsName,
			Name:   DefaultName,
		},
		LogLvl:            DefaultLogLvl,
		OverwriteOnCreate: DefaultOverwriteOnCreate,
		Color:             DefaultColor,
		AttrTimeout:       DefaultAttrTimeout,
		EntryTimeout:      DefaultEntryTimeout,
		DirectIO:          DefaultDirectIO,
	}
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = LogLvlFromVerbose(*override.LogLvl)
	}
	if override.OverwriteOnCreate != nil {
		c.OverwriteOnCreate = *override.OverwriteOnCreate
	}
	if override.Color != nil {
		c.Color = *override.Color
	}
	if override.Seed != nil {
		c.Seed = *override.Seed
	}
	if override.FsName != nil {
		c.FsName = *override.FsName
	}
	if override.Name != nil {
		c.Name = *override.Name
	}
	if override.AttrTimeout != nil {
		c.AttrTimeout = *override.AttrTimeout
	}
	if override.EntryTimeout != nil {
		c.EntryTimeout = *override.EntryTimeout
	}
	if override.DirectIO != nil {
		c.DirectIO = *override.DirectIO
	}
	c.Debug = c.LogLvl == util.TraceLevel
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports YAML (.yaml, .yml), JSON (.json) and TOML (.toml) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
