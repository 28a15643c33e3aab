// Package config holds interpreter constants and the optional slate.yml
// settings file.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const SourceFileExt = ".sl"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".sl", ".slate"}

const (
	DefaultPrompt             = "> "
	DefaultContinuationPrompt = "... "
	DefaultHistoryFile        = ".slate_history"
)

// TraceEnvVar enables stage tracing when set to "1", regardless of the
// config file.
const TraceEnvVar = "SLATE_TRACE"

// Config represents the optional slate.yml configuration. Every field is
// optional; a missing file means defaults.
type Config struct {
	// Prompt is the primary REPL prompt.
	Prompt string `yaml:"prompt,omitempty"`

	// ContinuationPrompt is shown while an input block is unbalanced.
	ContinuationPrompt string `yaml:"continuation_prompt,omitempty"`

	// HistoryFile is where the line reader loads and saves history.
	// Relative paths are resolved against the user's home directory.
	HistoryFile string `yaml:"history_file,omitempty"`

	// Trace enables stage trace logging to stderr.
	Trace bool `yaml:"trace,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Prompt:             DefaultPrompt,
		ContinuationPrompt: DefaultContinuationPrompt,
		HistoryFile:        DefaultHistoryFile,
	}
}

// Load reads the first settings file that exists, slate.yml in the working
// directory or else $HOME/.slate.yml, and merges it over the defaults; the
// other file is not read. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	paths := []string{"slate.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".slate.yml"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, err
		}
		cfg.merge(fileCfg)
		break
	}

	if os.Getenv(TraceEnvVar) == "1" {
		cfg.Trace = true
	}
	return cfg, nil
}

func (c *Config) merge(other Config) {
	if other.Prompt != "" {
		c.Prompt = other.Prompt
	}
	if other.ContinuationPrompt != "" {
		c.ContinuationPrompt = other.ContinuationPrompt
	}
	if other.HistoryFile != "" {
		c.HistoryFile = other.HistoryFile
	}
	if other.Trace {
		c.Trace = true
	}
}

// HistoryPath resolves the configured history file to an absolute path.
func (c *Config) HistoryPath() string {
	if filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return c.HistoryFile
	}
	return filepath.Join(home, c.HistoryFile)
}
