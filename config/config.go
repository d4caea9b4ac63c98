package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/goccy/go-yaml"
)

// DefaultSkillsDirectory is scanned when no directory is configured.
const DefaultSkillsDirectory = "skills"

// Default returns a configuration with the built-in defaults applied.
func Default() *Config {
	return &Config{
		SkillsDirectory: DefaultSkillsDirectory,
		LogLevel:        "info",
	}
}

// Save writes a Config to a file. The file extension is used to
// determine the configuration format:
// - .json -> JSON
// - .yml or .yaml -> YAML
func (config *Config) Save(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return config.SaveJSON(path)
	case ".yml", ".yaml":
		return config.SaveYAML(path)
	default:
		return fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// SaveYAML writes a Config to a YAML file
func (config *Config) SaveYAML(path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveJSON writes a Config to a JSON file
func (config *Config) SaveJSON(path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Write a Config to a writer in YAML format
func (config *Config) Write(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(config)
}

// Logger builds a logger at the configured level. An empty level
// yields the package default logger.
func (config *Config) Logger() (slogger.Logger, error) {
	levelStr := config.LogLevel
	if levelStr == "" {
		return slogger.DefaultLogger, nil
	}
	if !isValidLogLevel(levelStr) {
		return nil, fmt.Errorf("invalid log level: %s", levelStr)
	}
	return slogger.New(slogger.LevelFromString(levelStr)), nil
}

func isValidLogLevel(level string) bool {
	return level == "debug" || level == "info" || level == "warn" || level == "error"
}
