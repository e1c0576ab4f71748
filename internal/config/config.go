// Package config loads the tabmagnet configuration file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/example/tabmagnet/internal/core/placement"
	"github.com/example/tabmagnet/internal/core/tabs"
)

// Host backends.
const (
	HostTmux   = "tmux"
	HostMemory = "memory"
)

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// Config is the top-level configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	DBPath        string         `mapstructure:"db_path" yaml:"db_path"`
	SettleDelayMS int            `mapstructure:"settle_delay_ms" yaml:"settle_delay_ms"`
	NewTabURLs    []string       `mapstructure:"new_tab_urls" yaml:"new_tab_urls"`
	Languages     []string       `mapstructure:"languages" yaml:"languages"`
	Host          string         `mapstructure:"host" yaml:"host"`
	Tmux          TmuxConfig     `mapstructure:"tmux" yaml:"tmux"`
	Activity      ActivityConfig `mapstructure:"activity" yaml:"activity"`
}

// TmuxConfig configures the tmux host.
type TmuxConfig struct {
	Binary     string `mapstructure:"binary" yaml:"binary"`
	KeyBinding string `mapstructure:"key_binding" yaml:"key_binding"`
}

// ActivityConfig controls the activity log.
type ActivityConfig struct {
	Keep int `mapstructure:"keep" yaml:"keep"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		DBPath:        filepath.Join(home, ".tabmagnet", "tabmagnet.db"),
		SettleDelayMS: 50,
		NewTabURLs:    append([]string{}, placement.DefaultNewTabURLs...),
		Languages:     append([]string{}, tabs.DefaultLanguages...),
		Host:          HostTmux,
		Tmux: TmuxConfig{
			Binary:     "tmux",
			KeyBinding: "T",
		},
		Activity: ActivityConfig{
			Keep: 1000,
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tabmagnet", "config.yaml"), nil
}

// SettleDelay returns the creation settle delay as a duration.
func (c Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMS) * time.Millisecond
}
