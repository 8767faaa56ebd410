// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration: reading and writing the
// YAML config file and resolving the location of the birthday data file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"birthday-manager/internal/birthday"

	"gopkg.in/yaml.v3"
)

const (
	appDirName          = "birthday-manager"
	defaultDataFileName = "birthdays.txt"

	// DefaultUpcomingDays is the look-ahead window when none is configured.
	DefaultUpcomingDays = 7
)

// Config represents the top-level application configuration
type Config struct {
	// DataFile is the birthday file; absolute or starting with '~/' (optional)
	DataFile string `yaml:"data_file,omitempty"`

	// UpcomingDays is how many days ahead "upcoming" looks by default
	UpcomingDays int `yaml:"upcoming_days,omitempty"`

	// DateLayout is the Go time layout of the date column in the data file
	DateLayout string `yaml:"date_layout,omitempty"`

	// InputLayout is the Go time layout user-entered dates must follow
	InputLayout string `yaml:"input_layout,omitempty"`

	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"log_level,omitempty"`
}

// WithDefaults returns a copy of cfg with every unset field filled in.
func (cfg Config) WithDefaults() Config {
	if cfg.UpcomingDays <= 0 {
		cfg.UpcomingDays = DefaultUpcomingDays
	}
	if cfg.DateLayout == "" {
		cfg.DateLayout = birthday.DefaultShortDateLayout
	}
	if cfg.InputLayout == "" {
		cfg.InputLayout = birthday.DefaultInputLayout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

// DataPath returns the resolved location of the birthday file.
func (cfg Config) DataPath() (string, error) {
	if cfg.DataFile != "" {
		return ResolvePath(cfg.DataFile)
	}
	configPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), defaultDataFileName), nil
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, appDirName, "config.yaml"), nil
}

// LoadConfig reads the config file. A missing file yields an empty Config.
func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return cfg, nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	err = os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}

	err = EnsureConfigDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configPath, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return nil
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
