package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Journal configures the SQLite operation journal.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Log configures logger output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the root configuration.
type Config struct {
	OutputDir string  `toml:"output_dir"`
	Journal   Journal `toml:"journal"`
	Log       Log     `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Journal: Journal{
			Enabled: true,
			Path:    "~/.local/share/mrs-tools/journal.db",
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultConfigPath returns the location probed when no --config flag is
// given.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mrs-tools/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. The boolean reports whether a file
// was actually found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
	} else {
		var err error
		path, err = expandPath(path)
		if err != nil {
			return "", false, err
		}
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return path, true, nil
}

// applyEnvOverrides lets the environment win over the file for the fields
// scripts most often need to redirect.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MRS_TOOLS_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("MRS_TOOLS_JOURNAL_PATH"); v != "" {
		c.Journal.Path = v
	}
	if v := os.Getenv("MRS_TOOLS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) normalize() error {
	for _, field := range []*string{&c.OutputDir, &c.Journal.Path} {
		expanded, err := expandPath(strings.TrimSpace(*field))
		if err != nil {
			return err
		}
		*field = expanded
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("config: journal enabled but path empty")
	}
	return nil
}

// EnsureDirectories creates the directories the tool writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{}
	if c.OutputDir != "" {
		dirs = append(dirs, c.OutputDir)
	}
	if c.Journal.Enabled {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			return home, nil
		}
		return filepath.Join(home, pathValue[2:]), nil
	}
	return filepath.Abs(pathValue)
}

// ExpandPath expands ~ and relative segments in a user-supplied path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
