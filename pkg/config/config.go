package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the full client configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig identifies the chat service and the authenticated user.
type ServerConfig struct {
	URL      string `mapstructure:"url"`
	UserID   string `mapstructure:"user_id"`
	Token    string `mapstructure:"token"`
	Username string `mapstructure:"username"`
}

// StorageConfig locates the local mirror database.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quill", "config.yaml"), nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "quill.db"
	}
	return filepath.Join(home, ".local", "share", "quill", "quill.db")
}

// Load reads the config file at path, falling back to the default location
// when path is empty. A missing file is fine: environment variables and
// defaults still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if url := v.GetString("SERVER_URL"); url != "" {
		config.Server.URL = url
	}
	if userID := v.GetString("USER_ID"); userID != "" {
		config.Server.UserID = userID
	}
	if token := v.GetString("AUTH_TOKEN"); token != "" {
		config.Server.Token = token
	}

	return &config, nil
}

// Validate checks the fields every remote operation needs.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required (or set QUILL_SERVER_URL)")
	}
	if c.Server.UserID == "" {
		return fmt.Errorf("server.user_id is required (or set QUILL_USER_ID)")
	}
	if c.Server.Token == "" {
		return fmt.Errorf("server.token is required (or set QUILL_AUTH_TOKEN)")
	}
	return nil
}
