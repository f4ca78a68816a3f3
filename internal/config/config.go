package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvDB names the environment variable that points at an existing database file
const EnvDB = "CM_DB"

// Config represents the application configuration
type Config struct {
	Version      int         `toml:"version"`
	DBPath       string      `toml:"db_path"`
	Shell        string      `toml:"shell"`
	SeedFixtures bool        `toml:"seed_fixtures"`
	StoreTimeout Duration    `toml:"store_timeout"`
	Log          LogSettings `toml:"log"`
	UI           UISettings  `toml:"ui"`
}

// LogSettings controls where and how verbosely the app logs
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Title          string   `toml:"title"`
	Tabs           []string `toml:"tabs"`
	ConfirmMessage string   `toml:"confirm_message"`
	ShowTags       bool     `toml:"show_tags"`
}

// Duration is a time.Duration written as a string such as "2s"
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service reading from path, or from the
// user config directory when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// DefaultPath returns ~/.config/cm/config.toml (or the platform equivalent)
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "cm", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from the file keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Version:      1,
		DBPath:       filepath.Join(homeDir, ".cm", "command_manager.db"),
		Shell:        "",
		SeedFixtures: true,
		StoreTimeout: Duration{2 * time.Second},
		Log: LogSettings{
			File:  filepath.Join(homeDir, ".cm", "cm.log"),
			Level: "info",
		},
		UI: UISettings{
			Title:          "Command Manager",
			Tabs:           []string{"Commands", "Keys", "Store"},
			ConfirmMessage: "Run this command?",
			ShowTags:       true,
		},
	}
}

// Validate rejects values the app cannot work with
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.StoreTimeout.Duration <= 0 {
		return fmt.Errorf("store_timeout must be positive, got %s", c.StoreTimeout)
	}
	if len(c.UI.Tabs) != 3 {
		return fmt.Errorf("ui.tabs needs exactly 3 titles, got %d", len(c.UI.Tabs))
	}
	return nil
}

// ResolveDBPath picks the database file: the flag wins, then CM_DB, then the config value.
// CM_DB must name an existing file.
func (c *Config) ResolveDBPath(flagPath string) (string, error) {
	if flagPath != "" {
		return expandHome(flagPath), nil
	}
	if env := os.Getenv(EnvDB); env != "" {
		path := expandHome(env)
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvDB, env, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s=%s is a directory", EnvDB, env)
		}
		return path, nil
	}
	return expandHome(c.DBPath), nil
}

// LogFile returns the log file path with ~ expanded
func (c *Config) LogFile() string {
	return expandHome(c.Log.File)
}

// ShellPath returns the configured shell, then $SHELL, then /bin/sh
func (c *Config) ShellPath() string {
	if c.Shell != "" {
		return c.Shell
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
