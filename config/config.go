// Package config loads and saves the assembler's TOML configuration,
// following the same shape as the teacher's emulator config: a nested
// Config struct, OS-specific default paths, and Load/Save helpers built on
// github.com/BurntSushi/toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"

	"masm100/word"
)

// Config represents the assembler's configuration.
type Config struct {
	// Assembly settings
	Assembly struct {
		MemorySize    int `toml:"memory_size"`
		BaseAddress   int `toml:"base_address"`
		MaxMacroNest  int `toml:"max_macro_nesting"`
		MaxLineLength int `toml:"max_line_length"`
	} `toml:"assembly"`

	// Output settings
	Output struct {
		WriteObject    bool   `toml:"write_object"`
		WriteEntries   bool   `toml:"write_entries"`
		WriteExterns   bool   `toml:"write_externs"`
		Base64Alphabet string `toml:"base64_alphabet"`
	} `toml:"output"`

	// Diagnostics settings
	Diagnostics struct {
		ColorOutput   bool `toml:"color_output"`
		MaxErrors     int  `toml:"max_errors"`
		SourceContext int  `toml:"source_context"`
	} `toml:"diagnostics"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Assembly.MemorySize = 1024
	cfg.Assembly.BaseAddress = 100
	cfg.Assembly.MaxMacroNest = 1 // this ISA forbids nested macros; see Non-goals
	cfg.Assembly.MaxLineLength = 80

	cfg.Output.WriteObject = true
	cfg.Output.WriteEntries = true
	cfg.Output.WriteExterns = true
	cfg.Output.Base64Alphabet = word.Alphabet

	cfg.Diagnostics.ColorOutput = true
	cfg.Diagnostics.MaxErrors = 0 // 0 means unlimited
	cfg.Diagnostics.SourceContext = 0

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "masm100")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "masm100")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "masm100", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "masm100", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file is
// not an error: the defaults are returned.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
