package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/staffplan/internal/model"
)

// Config holds all staffplan configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Store      StoreConfig      `toml:"store"`
	Server     ServerConfig     `toml:"server"`
	Remote     RemoteConfig     `toml:"remote"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultView  string `toml:"default_view,omitempty"`
	ProposalFile string `toml:"proposal_file,omitempty"`
	FirmName     string `toml:"firm_name,omitempty" env:"STAFFPLAN_FIRM_NAME"`
}

// DefaultsConfig seeds the global settings of new proposals.
type DefaultsConfig struct {
	LaborCostMultiplier   float64 `toml:"labor_cost_multiplier"`
	OverheadPercentage    float64 `toml:"overhead_percentage"`
	WeeksInProposalPeriod int     `toml:"weeks_in_proposal_period"`
}

// Settings converts the defaults into engine settings.
func (d DefaultsConfig) Settings() model.GlobalSettings {
	return model.GlobalSettings{
		LaborCostMultiplier:   d.LaborCostMultiplier,
		OverheadPercentage:    d.OverheadPercentage,
		WeeksInProposalPeriod: d.WeeksInProposalPeriod,
	}
}

// StoreConfig holds the local document store location.
type StoreConfig struct {
	Path string `toml:"path,omitempty" env:"STAFFPLAN_STORE_PATH"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr         string `toml:"addr" env:"STAFFPLAN_SERVER_ADDR"`
	Token        string `toml:"token,omitempty" env:"STAFFPLAN_SERVER_TOKEN"`
	EventsBuffer int    `toml:"events_buffer,omitempty"`
}

// RemoteConfig points the CLI at a staffplan server instead of the local store.
type RemoteConfig struct {
	URL   string `toml:"url,omitempty" env:"STAFFPLAN_REMOTE_URL"`
	Token string `toml:"token,omitempty" env:"STAFFPLAN_REMOTE_TOKEN"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" env:"STAFFPLAN_LOG_LEVEL"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	s := model.DefaultSettings()
	return Config{
		General: GeneralConfig{
			DefaultView: model.Combined,
		},
		Defaults: DefaultsConfig{
			LaborCostMultiplier:   s.LaborCostMultiplier,
			OverheadPercentage:    s.OverheadPercentage,
			WeeksInProposalPeriod: s.WeeksInProposalPeriod,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8788",
			EventsBuffer: 200,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "staffplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "staffplan")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "staffplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "staffplan")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// StorePath returns the configured SQLite path or the default under DataDir.
func (c Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(), "proposals.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment variables override values from the file.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
