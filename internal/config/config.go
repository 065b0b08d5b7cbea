package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"rhystmorgan/contactterm/internal/api"
	"rhystmorgan/contactterm/internal/viewstate"
)

const (
	EnvPrefix = "CONTACTTERM"

	appDir      = ".contactterm"
	logFileName = "contactterm.log"
)

type Config struct {
	API     APIConfig
	UI      UIConfig
	Logging LoggingConfig
	Serve   ServeConfig
}

// APIConfig tunes the contacts client. The server address is fixed at
// api.DefaultBaseURL and is not read from config.
type APIConfig struct {
	Timeout time.Duration
}

type UIConfig struct {
	PageSize int
}

type LoggingConfig struct {
	Level     string
	Format    string
	File      string
	AddSource bool
}

type ServeConfig struct {
	Listen string
}

// NewViper returns a viper instance with defaults applied and CONTACTTERM_*
// environment variables bound ("api.timeout" -> CONTACTTERM_API_TIMEOUT).
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	defaults := GetDefaultConfig()
	v.SetDefault("api.timeout", defaults.API.Timeout)
	v.SetDefault("ui.page_size", defaults.UI.PageSize)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.add_source", defaults.Logging.AddSource)
	v.SetDefault("serve.listen", defaults.Serve.Listen)
}

// ReadFile merges an optional config file into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	v.SetConfigFile(ExpandHomePath(path))
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

func Load(v *viper.Viper) (*Config, error) {
	config := &Config{
		API: APIConfig{
			Timeout: v.GetDuration("api.timeout"),
		},
		UI: UIConfig{
			PageSize: v.GetInt("ui.page_size"),
		},
		Logging: LoggingConfig{
			Level:     strings.TrimSpace(v.GetString("logging.level")),
			Format:    strings.TrimSpace(v.GetString("logging.format")),
			File:      ExpandHomePath(strings.TrimSpace(v.GetString("logging.file"))),
			AddSource: v.GetBool("logging.add_source"),
		},
		Serve: ServeConfig{
			Listen: strings.TrimSpace(v.GetString("serve.listen")),
		},
	}

	if IsDebugEnabled() {
		config.Logging.Level = "debug"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("api timeout must be non-negative, got: %v", c.API.Timeout)
	}

	if c.UI.PageSize != viewstate.DefaultPageSize {
		return fmt.Errorf("ui page size is fixed at %d, got: %d", viewstate.DefaultPageSize, c.UI.PageSize)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %s (must be 'text' or 'json')", c.Logging.Format)
	}

	if c.Serve.Listen == "" {
		return fmt.Errorf("serve listen address must not be empty")
	}

	return nil
}

func (c *Config) ToClientConfig() api.Config {
	return api.Config{
		BaseURL: api.DefaultBaseURL,
		Timeout: c.API.Timeout,
	}
}

func GetDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Timeout: 0,
		},
		UI: UIConfig{
			PageSize: viewstate.DefaultPageSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join("~", appDir, logFileName),
		},
		Serve: ServeConfig{
			Listen: "127.0.0.1:5000",
		},
	}
}

// ExpandHomePath replaces a leading "~" with the user's home directory.
func ExpandHomePath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

// IsDebugEnabled reports whether CONTACTTERM_DEBUG is set. Load then forces
// debug logging regardless of logging.level.
func IsDebugEnabled() bool {
	return os.Getenv(EnvPrefix+"_DEBUG") == "true" || os.Getenv(EnvPrefix+"_DEBUG") == "1"
}
