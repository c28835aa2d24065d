// Package config layers defaults, an optional config.toml and PRIZE_WHEEL_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/lixenwraith/prize-wheel/constants"
)

// EnvPrefix is prepended to every key when reading the environment, e.g. PRIZE_WHEEL_DATA_DIR
const EnvPrefix = "PRIZE_WHEEL"

// Config holds the startup configuration
type Config struct {
	// DataDir holds pool.toml and audio.toml
	DataDir string `mapstructure:"data_dir"`

	// DefaultPool seeds the pool text on first run only
	DefaultPool string `mapstructure:"default_pool"`

	Audio AudioConfig `mapstructure:",squash"`
}

// AudioConfig holds first-run audio defaults and output settings
type AudioConfig struct {
	Enabled      bool `mapstructure:"audio_enabled"`
	MasterVolume int  `mapstructure:"master_volume"` // 0-100
	SampleRate   int  `mapstructure:"sample_rate"`
}

// Volume converts MasterVolume to 0.0-1.0
func (a AudioConfig) Volume() float64 {
	v := float64(a.MasterVolume) / 100.0
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// DefaultDataDir returns <user config dir>/prize-wheel, or .prize-wheel when no config dir is available
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "." + constants.AppName
	}
	return filepath.Join(dir, constants.AppName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("default_pool", "")
	v.SetDefault("audio_enabled", constants.DefaultAudioEnabled)
	v.SetDefault("master_volume", int(constants.DefaultAudioVolume*100))
	v.SetDefault("sample_rate", constants.AudioSampleRate)
}

// Load reads configuration. An explicit path must exist; otherwise config.toml is looked up
// in the working directory and the default data directory, and its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultDataDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = constants.AudioSampleRate
	}
	return &cfg, nil
}
