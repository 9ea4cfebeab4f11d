// Package config contains bloomsync configuration definitions.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-bloomsync/common/types"
)

const (
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder = "console"
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder = "json"
)

// Config defines the configuration of the bloomsync tool.
type Config struct {
	DataDir string `mapstructure:"data-dir"`

	LogLevel   zapcore.Level `mapstructure:"log-level"`
	LogEncoder string        `mapstructure:"log-encoder"`

	MetricsPort       int           `mapstructure:"metrics-port"`
	MetricsPush       string        `mapstructure:"metrics-push"`
	MetricsPushPeriod time.Duration `mapstructure:"metrics-push-period"`

	// Spaces are the spaces a run reconciles; empty means every seeded space.
	Spaces []types.SpaceID `mapstructure:"spaces"`
	// PassTimeout bounds a single local sync pass.
	PassTimeout time.Duration `mapstructure:"pass-timeout"`

	Seed SeedConfig `mapstructure:"seed"`
}

// SeedConfig controls how the seed command populates the store.
type SeedConfig struct {
	AgentsPerSpace int `mapstructure:"agents-per-space"`
	OpsPerAgent    int `mapstructure:"ops-per-agent"`
	OpSize         int `mapstructure:"op-size"`
	// SharedOps is the number of ops held by every agent of a space.
	SharedOps  int `mapstructure:"shared-ops"`
	AgentInfos int `mapstructure:"agent-infos"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:           "./bloomsync-data",
		LogLevel:          zapcore.InfoLevel,
		LogEncoder:        ConsoleLogEncoder,
		MetricsPushPeriod: time.Minute,
		PassTimeout:       30 * time.Second,
		Seed: SeedConfig{
			AgentsPerSpace: 3,
			OpsPerAgent:    100,
			OpSize:         256,
			SharedOps:      10,
			AgentInfos:     3,
		},
	}
}

// Validate checks the configuration for values the tool can't work with.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.DataDir == "" {
		errs = append(errs, errors.New("data-dir must be set"))
	}
	switch cfg.LogEncoder {
	case ConsoleLogEncoder, JSONLogEncoder:
	default:
		errs = append(errs, fmt.Errorf("unknown log-encoder %q", cfg.LogEncoder))
	}
	if cfg.PassTimeout <= 0 {
		errs = append(errs, fmt.Errorf("pass-timeout must be positive, got %v", cfg.PassTimeout))
	}
	if cfg.MetricsPush != "" && cfg.MetricsPushPeriod <= 0 {
		errs = append(errs, fmt.Errorf("metrics-push-period must be positive, got %v", cfg.MetricsPushPeriod))
	}
	if cfg.Seed.AgentsPerSpace < 0 || cfg.Seed.OpsPerAgent < 0 || cfg.Seed.SharedOps < 0 || cfg.Seed.AgentInfos < 0 {
		errs = append(errs, errors.New("seed counts must not be negative"))
	}
	if cfg.Seed.OpSize <= 0 {
		errs = append(errs, fmt.Errorf("seed op-size must be positive, got %d", cfg.Seed.OpSize))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the config file at path from fs and decodes it over cfg, so that
// values missing from the file keep their current value. Unknown keys are an error.
func LoadConfig(fs afero.Fs, path string, cfg *Config) error {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		withErrorUnused(),
	}
	if err := v.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	return nil
}

func withErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
