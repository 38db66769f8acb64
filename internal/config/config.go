// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/dmflow/internal/trigger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name used for both the global and project file.
const FileName = "dmflow.yml"

// Config holds all configuration values for dmflow.
type Config struct {
	LogLevel    string  `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string  `mapstructure:"log_file" yaml:"log_file"`
	DefaultMode string  `mapstructure:"default_mode" yaml:"default_mode"`
	Theme       string  `mapstructure:"theme" yaml:"theme"`
	Preview     Preview `mapstructure:"preview" yaml:"preview"`
	Serve       Serve   `mapstructure:"serve" yaml:"serve"`
}

// Preview configures the comment simulator.
type Preview struct {
	Personalize bool   `mapstructure:"personalize" yaml:"personalize"`
	Author      string `mapstructure:"author" yaml:"author"`
}

// Serve configures the MCP tool server.
type Serve struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Default returns the configuration used when no file or env var overrides it.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		DefaultMode: string(trigger.ModeExact),
		Theme:       "instagram",
		Serve:       Serve{Addr: "localhost:7373"},
	}
}

// envKeys lists every key bound to a DMFLOW_ environment variable.
var envKeys = []string{
	"log_level",
	"log_file",
	"default_mode",
	"theme",
	"preview.personalize",
	"preview.author",
	"serve.addr",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("dmflow")

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("default_mode", def.DefaultMode)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("preview.personalize", def.Preview.Personalize)
	v.SetDefault("preview.author", def.Preview.Author)
	v.SetDefault("serve.addr", def.Serve.Addr)

	v.SetEnvPrefix("DMFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so Unmarshal sees env-only values
	for _, key := range envKeys {
		env := "DMFLOW_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that are parsed later by other packages.
func (c *Config) Validate() error {
	if _, err := trigger.ParseMode(c.DefaultMode); err != nil {
		return fmt.Errorf("default_mode: %w", err)
	}
	return nil
}

// Mode returns the configured default trigger mode, falling back to exact.
func (c *Config) Mode() trigger.Mode {
	mode, err := trigger.ParseMode(c.DefaultMode)
	if err != nil {
		return trigger.ModeExact
	}
	return mode
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/dmflow/dmflow.yml or $XDG_CONFIG_HOME/dmflow/dmflow.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dmflow", FileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dmflow", FileName)
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return FileName
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
