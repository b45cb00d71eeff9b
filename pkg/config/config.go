/*
Package config manages TOML config for levserve services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bizzyvinci/levserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Index  IndexConfig  `toml:"index"`
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
}

// IndexConfig holds the similarity index parameters.
type IndexConfig struct {
	Alpha       float64 `toml:"alpha"`
	Beta        float64 `toml:"beta"`
	Threshold   float64 `toml:"threshold"`
	MaxDistance int     `toml:"max_distance"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinTerm      int  `toml:"min_term"`
	MaxTerm      int  `toml:"max_term"`
	EnableFilter bool `toml:"enable_filter"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	MaxWords               int `toml:"max_words"`
	MaxWordCountValidation int `toml:"max_word_count_validation"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Alpha:       1.8,
			Beta:        5.0,
			Threshold:   0.0,
			MaxDistance: 2,
		},
		Server: ServerConfig{
			MaxLimit:     64,
			MinTerm:      1,
			MaxTerm:      60,
			EnableFilter: true,
		},
		Dict: DictConfig{
			MaxWords:               50000,
			MaxWordCountValidation: 1000000,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/levserve
// 2. Current executable dir
// 3. builtin defaults (handled by callers)
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "levserve")
	if err := utils.EnsureDir(primaryPath); err == nil {
		return primaryPath, nil
	}
	return utils.GetExecutableDir()
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: ~/.config/levserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Decoding starts from the defaults,
// so a partial file only overrides the keys it names.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the index parameters and saves to file. Nil pointers
// leave the current value untouched.
func (c *Config) Update(configPath string, alpha, beta, threshold *float64, maxDistance *int) error {
	idx := &c.Index
	if alpha != nil {
		idx.Alpha = *alpha
	}
	if beta != nil {
		idx.Beta = *beta
	}
	if threshold != nil {
		idx.Threshold = *threshold
	}
	if maxDistance != nil {
		idx.MaxDistance = *maxDistance
	}
	return SaveConfig(c, configPath)
}
