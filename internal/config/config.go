package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

const (
	keyBackgroundColor = "background_color"
	keyDataFolder      = "data_folder"
	keyLogLevel        = "log_level"
	keyLogFormat       = "log_format"
	keySaveInterval    = "save_interval"
	keyRefreshInterval = "refresh_interval"
)

// Config holds the settings read once at startup by the shell.
type Config struct {
	// BackgroundColor is the overlay background used while no task is open.
	BackgroundColor string
	// DataFolder is where file dialogs start.
	DataFolder      string
	LogLevel        string
	LogFormat       string
	SaveInterval    time.Duration
	RefreshInterval time.Duration
}

// Manager owns the config file.
type Manager struct {
	v    *viper.Viper
	path string
}

// DefaultPath returns tasktracker/tasktracker.yml under the user config home.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}
	return filepath.Join(configHome, "tasktracker", "tasktracker.yml"), nil
}

// Load reads the config file at path, creating it with default values when
// it does not exist.
func Load(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetDefault(keyBackgroundColor, "White")
	v.SetDefault(keyDataFolder, "")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keySaveInterval, "60s")
	v.SetDefault(keyRefreshInterval, "1s")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			slog.Info("Config file not found; creating one with default values", "path", path)
			if err := v.WriteConfigAs(path); err != nil {
				return nil, fmt.Errorf("error creating config file: %w", err)
			}
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	m := &Manager{v: v, path: path}
	if err := validate(m.Config()); err != nil {
		return nil, err
	}
	return m, nil
}

func validate(cfg Config) error {
	if cfg.SaveInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", keySaveInterval, cfg.SaveInterval)
	}
	if cfg.RefreshInterval <= 0 {
		return fmt.Errorf("%s must be positive, got %s", keyRefreshInterval, cfg.RefreshInterval)
	}
	if cfg.BackgroundColor == "" {
		return fmt.Errorf("%s must not be empty", keyBackgroundColor)
	}
	return nil
}

// Config returns the current settings.
func (m *Manager) Config() Config {
	return Config{
		BackgroundColor: m.v.GetString(keyBackgroundColor),
		DataFolder:      m.v.GetString(keyDataFolder),
		LogLevel:        m.v.GetString(keyLogLevel),
		LogFormat:       m.v.GetString(keyLogFormat),
		SaveInterval:    m.v.GetDuration(keySaveInterval),
		RefreshInterval: m.v.GetDuration(keyRefreshInterval),
	}
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.path
}

// SetBackgroundColor updates and persists the default background color.
func (m *Manager) SetBackgroundColor(c string) error {
	if c == "" {
		return fmt.Errorf("%s must not be empty", keyBackgroundColor)
	}
	m.v.Set(keyBackgroundColor, c)
	return m.write()
}

// SetDataFolder updates and persists the file dialog start folder.
func (m *Manager) SetDataFolder(dir string) error {
	m.v.Set(keyDataFolder, dir)
	return m.write()
}

func (m *Manager) write() error {
	if err := m.v.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
