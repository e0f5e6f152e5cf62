package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"storedash/internal/eventbus"
)

const (
	currentVersion = 1

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as "3.5s" in the config file
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config represents the application configuration
type Config struct {
	Version int           `toml:"version"`
	API     APISettings   `toml:"api"`
	Cache   CacheSettings `toml:"cache"`
	List    ListSettings  `toml:"list"`
	UI      UISettings    `toml:"ui"`
}

// APISettings points the dashboard at a backend
type APISettings struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// CacheSettings sizes the list query cache
type CacheSettings struct {
	TTL  Duration `toml:"ttl"`
	Size int      `toml:"size"`
}

// ListSettings tunes the windowed lists
type ListSettings struct {
	Overscan          int `toml:"overscan"`
	ProductRowHeight  int `toml:"product_row_height"`
	OrderRowHeight    int `toml:"order_row_height"`
	CategoryRowHeight int `toml:"category_row_height"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Theme          string   `toml:"theme"`
	ToastTTL       Duration `toml:"toast_ttl"`
	AutosaveOnExit bool     `toml:"autosave_on_exit"`
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
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/storedash/config.toml or the
// platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "storedash", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when
// path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file. A missing file yields defaults.
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:  cs.filePath,
			Theme: cfg.UI.Theme,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over the defaults so missing keys keep their default values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	config.Version = currentVersion
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports the first setting that cannot be used
func (c *Config) Validate() error {
	switch {
	case c.API.BaseURL == "":
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalid)
	case c.API.Timeout.Duration <= 0:
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalid)
	case c.Cache.Size <= 0:
		return fmt.Errorf("%w: cache.size must be positive", ErrInvalid)
	case c.Cache.TTL.Duration < 0:
		return fmt.Errorf("%w: cache.ttl must not be negative", ErrInvalid)
	case c.List.Overscan < 1:
		return fmt.Errorf("%w: list.overscan must be at least 1", ErrInvalid)
	case c.List.ProductRowHeight <= 0:
		return fmt.Errorf("%w: list.product_row_height must be positive", ErrInvalid)
	case c.List.OrderRowHeight <= 0:
		return fmt.Errorf("%w: list.order_row_height must be positive", ErrInvalid)
	case c.List.CategoryRowHeight <= 0:
		return fmt.Errorf("%w: list.category_row_height must be positive", ErrInvalid)
	case c.UI.Theme != ThemeDark && c.UI.Theme != ThemeLight:
		return fmt.Errorf("%w: ui.theme must be %q or %q", ErrInvalid, ThemeDark, ThemeLight)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: currentVersion,
		API: APISettings{
			BaseURL: "http://localhost:3000/api/v1",
			Timeout: Duration{10 * time.Second},
		},
		Cache: CacheSettings{
			TTL:  Duration{30 * time.Second},
			Size: 16,
		},
		List: ListSettings{
			Overscan:          4,
			ProductRowHeight:  2,
			OrderRowHeight:    2,
			CategoryRowHeight: 1,
		},
		UI: UISettings{
			Theme:          ThemeDark,
			ToastTTL:       Duration{3500 * time.Millisecond},
			AutosaveOnExit: true,
		},
	}
}
