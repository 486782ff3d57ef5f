package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"touchviz/internal/domain"
	"touchviz/internal/eventbus"
	"touchviz/internal/selection"
)

// FileName is the per-directory config file name
const FileName = ".touchviz.toml"

// Config represents the application configuration
type Config struct {
	Version     int              `toml:"version"`
	DataKeys    []string         `toml:"data_keys"`            // selection id namespaces
	MergeWindow float64          `toml:"merge_window_seconds"` // how long taps keep merging
	Palette     []string         `toml:"palette,omitempty"`    // selection colours, ANSI or hex
	Dataset     DatasetSettings  `toml:"dataset"`
	Touchpad    TouchpadSettings `toml:"touchpad"`
	UISettings  UISettings       `toml:"ui"`
}

// DatasetSettings points at the CSV files to visualize
type DatasetSettings struct {
	Nodes string `toml:"nodes,omitempty"`
	Edges string `toml:"edges,omitempty"`
}

// TouchpadSettings configures the companion touchpad server
type TouchpadSettings struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowLegend bool   `toml:"show_legend"`
	StartMode  string `toml:"start_mode"` // lasso or rectangle
}

// MergeWindowDuration returns the merge window as a duration
func (c *Config) MergeWindowDuration() time.Duration {
	return time.Duration(c.MergeWindow * float64(time.Second))
}

// PaletteColors returns the configured palette, or the default one
func (c *Config) PaletteColors() []lipgloss.Color {
	if len(c.Palette) == 0 {
		return selection.DefaultPalette
	}
	colors := make([]lipgloss.Color, len(c.Palette))
	for i, p := range c.Palette {
		colors[i] = lipgloss.Color(p)
	}
	return colors
}

// Validate checks values the application cannot run without
func (c *Config) Validate() error {
	if len(c.DataKeys) == 0 {
		return errors.New("config: data_keys must not be empty")
	}
	seen := make(map[string]bool, len(c.DataKeys))
	for _, k := range c.DataKeys {
		if k == "" {
			return errors.New("config: empty data key")
		}
		if seen[k] {
			return fmt.Errorf("config: duplicate data key %q", k)
		}
		seen[k] = true
	}
	if c.MergeWindow < 0 {
		return fmt.Errorf("config: merge_window_seconds must not be negative, got %v", c.MergeWindow)
	}
	if c.Touchpad.Enabled && c.Touchpad.Addr == "" {
		return errors.New("config: touchpad enabled without addr")
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      *eventbus.Dispatcher
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "touchviz", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service that announces loads and saves
func NewConfigServiceWithBus(bus *eventbus.Dispatcher) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from the user config directory, or the defaults
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publish(domain.ConfigLoadedEvent{Path: "", DataKeys: cfg.DataKeys})
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the user config directory
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.DataKeys = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.DataKeys) == 0 {
		cfg.DataKeys = DefaultConfig().DataKeys
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cs.publish(domain.ConfigLoadedEvent{Path: path, DataKeys: cfg.DataKeys})
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

	cs.publish(domain.ConfigSavedEvent{Path: path})
	return nil
}

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		_ = cs.bus.Dispatch(e)
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		DataKeys:    []string{"node"},
		MergeWindow: selection.DefaultMergeWindow.Seconds(),
		Touchpad: TouchpadSettings{
			Enabled: false,
			Addr:    "127.0.0.1:8765",
		},
		UISettings: UISettings{
			ShowLegend: true,
			StartMode:  "lasso",
		},
	}
}
