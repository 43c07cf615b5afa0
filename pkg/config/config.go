/*
Package config manages TOML config for the spellserve tools.

InitConfig handles automatic config file creation and loading with fallback to
defaults. LoadConfig and SaveConfig provide direct fs for runtime changes.
LoadConfigWithPriority resolves the effective config path: an explicit path
wins, then the user config dir, then the working directory.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/spellserve/spellserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Compiler CompilerConfig `toml:"compiler"`
	CLI      CliConfig      `toml:"cli"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	// MaxLimit caps how many matches a single IPC response carries.
	MaxLimit int `toml:"max_limit"`
	// MaxDistance caps the per-request distance budget.
	MaxDistance int `toml:"max_distance"`
}

// CompilerConfig holds dictionary compilation options.
type CompilerConfig struct {
	// Strict rejects malformed word/frequency pairs instead of skipping them.
	Strict bool `toml:"strict"`
}

// CliConfig holds line-mode interface options.
type CliConfig struct {
	// Debug prints per-query timing to stderr.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:    64,
			MaxDistance: 8,
		},
		Compiler: CompilerConfig{
			Strict: false,
		},
		CLI: CliConfig{
			Debug: false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", configPath)
		return config, nil
	}
	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(config)
}

// LoadConfigWithPriority resolves and loads the effective config file.
// Priority: the explicit path if given, then spellserve/config.toml under the
// user config dir, then ./config.toml. The first existing file wins; if none
// exists, a default file is created at the first candidate path. If that
// fails, the defaults are returned with an empty path and no file is written.
func LoadConfigWithPriority(explicitPath string) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := LoadConfig(explicitPath)
		if err != nil {
			return nil, explicitPath, err
		}
		return cfg, explicitPath, nil
	}

	var candidates []string
	if userDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(userDir, "spellserve", "config.toml"))
	}
	candidates = append(candidates, "config.toml")

	for _, path := range candidates {
		if utils.FileExists(path) {
			cfg, err := LoadConfig(path)
			if err != nil {
				return nil, path, err
			}
			return cfg, path, nil
		}
	}

	path := candidates[0]
	cfg, err := InitConfig(path)
	if err != nil {
		log.Warnf("Failed to create config at %s, using defaults: %v", path, err)
		return DefaultConfig(), "", nil
	}
	return cfg, path, nil
}
