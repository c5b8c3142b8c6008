// Package config loads simulation tuning from a TOML file with TERMNAV_* environment overrides
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/termnav/navigation"
	"github.com/lixenwraith/termnav/parameter"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TERMNAV_"

var (
	// ErrInvalidConfig reports a value outside its permitted range
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownKey reports a key in the file that maps to no setting
	ErrUnknownKey = errors.New("unknown config key")
)

// Config is the full tuning surface
type Config struct {
	Engine   EngineConfig   `toml:"engine" envPrefix:"ENGINE_"`
	Wander   WanderConfig   `toml:"wander" envPrefix:"WANDER_"`
	Navigate NavigateConfig `toml:"navigate" envPrefix:"NAVIGATE_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
}

type EngineConfig struct {
	TickInterval time.Duration `toml:"tick_interval" env:"TICK_INTERVAL"`
}

type WanderConfig struct {
	AnglePrecision float64            `toml:"angle_precision" env:"ANGLE_PRECISION"`
	Visibility     float64            `toml:"visibility" env:"VISIBILITY"`
	CloseEnough    float64            `toml:"close_enough" env:"CLOSE_ENOUGH"`
	ReactionTime   time.Duration      `toml:"reaction_time" env:"REACTION_TIME"`
	Weights        map[string]float64 `toml:"weights" env:"WEIGHTS"` // sense id -> weight
}

type NavigateConfig struct {
	CloseEnough      float64       `toml:"close_enough" env:"CLOSE_ENOUGH"`
	StuckThreshold   time.Duration `toml:"stuck_threshold" env:"STUCK_THRESHOLD"`
	RefreshInterval  time.Duration `toml:"refresh_interval" env:"REFRESH_INTERVAL"`
	ForceDestination bool          `toml:"force_destination" env:"FORCE_DESTINATION"`
	Show             bool          `toml:"show" env:"SHOW"`
}

type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	File  string `toml:"file" env:"FILE"` // Empty logs to the fallback writer
}

// Default returns the built-in tuning
func Default() Config {
	return Config{
		Engine: EngineConfig{TickInterval: parameter.TickInterval},
		Wander: WanderConfig{
			AnglePrecision: parameter.WanderAnglePrecision,
			Visibility:     parameter.WanderVisibility,
			CloseEnough:    parameter.WanderCloseEnough,
			ReactionTime:   parameter.WanderReactionTime,
			Weights: map[string]float64{
				string(navigation.SenseVisibility):     parameter.WeightVisibility,
				string(navigation.SenseCloserToTarget): parameter.WeightCloserToTarget,
				string(navigation.SenseSimilarHeading): parameter.WeightSimilarHeading,
			},
		},
		Navigate: NavigateConfig{
			CloseEnough:     parameter.NavCloseEnough,
			StuckThreshold:  parameter.NavStuckThreshold,
			RefreshInterval: parameter.NavRefreshInterval,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load layers defaults, the TOML file at path (skipped when empty) and the environment
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, fmt.Errorf("%w in %s: %s", ErrUnknownKey, path, strings.Join(keys, ", "))
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every range constraint
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Engine.TickInterval > 0, "engine.tick_interval must be positive, got %v", c.Engine.TickInterval)

	w := c.Wander
	check(w.AnglePrecision > 0 && w.AnglePrecision <= 180, "wander.angle_precision must be in (0, 180], got %v", w.AnglePrecision)
	check(w.Visibility > 0, "wander.visibility must be positive, got %v", w.Visibility)
	check(w.CloseEnough > 0, "wander.close_enough must be positive, got %v", w.CloseEnough)
	check(w.ReactionTime >= 0, "wander.reaction_time must not be negative, got %v", w.ReactionTime)
	for id := range w.Weights {
		check(knownSense(id), "wander.weights has unknown sense %q", id)
	}

	n := c.Navigate
	check(n.CloseEnough > 0, "navigate.close_enough must be positive, got %v", n.CloseEnough)
	check(n.StuckThreshold > 0, "navigate.stuck_threshold must be positive, got %v", n.StuckThreshold)
	check(n.RefreshInterval > 0, "navigate.refresh_interval must be positive, got %v", n.RefreshInterval)

	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

func knownSense(id string) bool {
	switch navigation.SenseID(id) {
	case navigation.SenseVisibility, navigation.SenseCloserToTarget, navigation.SenseSimilarHeading:
		return true
	}
	return false
}

// WanderOptions converts the wander section, CuriosityPoint is left for the caller
func (c Config) WanderOptions() navigation.WanderOptions {
	opts := navigation.DefaultWanderOptions()
	opts.AnglePrecision = c.Wander.AnglePrecision
	opts.Visibility = c.Wander.Visibility
	opts.CloseEnough = c.Wander.CloseEnough
	opts.ReactionTime = c.Wander.ReactionTime
	if c.Wander.Weights != nil {
		opts.Weights = make(map[navigation.SenseID]float64, len(c.Wander.Weights))
		for id, w := range c.Wander.Weights {
			opts.Weights[navigation.SenseID(id)] = w
		}
	}
	return opts
}

// NavigateOptions converts the navigate section with the wander section nested
func (c Config) NavigateOptions() navigation.NavigateOptions {
	return navigation.NavigateOptions{
		CloseEnough:      c.Navigate.CloseEnough,
		ForceDestination: c.Navigate.ForceDestination,
		Show:             c.Navigate.Show,
		StuckThreshold:   c.Navigate.StuckThreshold,
		RefreshInterval:  c.Navigate.RefreshInterval,
		Wander:           c.WanderOptions(),
	}
}
