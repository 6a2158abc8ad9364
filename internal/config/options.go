package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Bounds is a [lo, hi] stat range used by Gearset Mode (spec.md §6).
type Bounds struct {
	Lo uint16 `mapstructure:"lo"`
	Hi uint16 `mapstructure:"hi"`
}

// StatBounds is the "bounds" record of options.json.
type StatBounds struct {
	Cms  [2]uint16 `mapstructure:"cms"`
	Ctrl [2]uint16 `mapstructure:"ctrl"`
	CP   [2]uint16 `mapstructure:"cp"`
}

// Options is the options.json configuration record (spec.md §6).
type Options struct {
	Mode string `mapstructure:"mode"` // "recipe" or "gearset"

	InCache  string `mapstructure:"incache"`
	OutCache string `mapstructure:"outcache"`

	RecipeFile string `mapstructure:"recipe_file"`

	Bounds StatBounds `mapstructure:"bounds"`

	// ScalingMode resolves spec.md §9's "open question: scaling constants"
	// (SPEC_FULL.md §4): whether the 580-rlvl scaling modifier applies
	// whenever rlvl >= 580 ("rlvlGate"), or whenever the clvl that
	// RecipeLevelTable maps rlvl to is >= 580 ("clvlGate"). Defaulted in
	// LoadOptions.
	ScalingMode string `mapstructure:"scaling_mode"` // "rlvlGate" or "clvlGate"

	// CheckTime resolves spec.md §9's "open question: time accounting":
	// false (the default) runs the untimed, authoritative DP mode; true
	// enables the time-checked binary search (spec.md §4.4).
	CheckTime bool `mapstructure:"check_time"`

	// WatchConfig is decoded from "watch_config" but nothing reads it:
	// cmd/craftsolve does not reload this file; live reload is available only
	// to a caller of WatchOptions. Watch enables the optional live-progress
	// dashboard (internal/watch, off by default).
	WatchConfig bool   `mapstructure:"watch_config"`
	Watch       bool   `mapstructure:"watch"`
	WatchAddr   string `mapstructure:"watch_addr"`
}

const (
	ScalingModeRlvlGate = "rlvlGate"
	ScalingModeClvlGate = "clvlGate"
)

// LoadOptions reads options.json at path, applying defaults for fields the
// file omits.
func LoadOptions(path string) (*Options, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("scaling_mode", ScalingModeRlvlGate)
	v.SetDefault("check_time", false)
	v.SetDefault("watch_addr", ":8080")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: loading options %q: %w", path, err)
	}

	var o Options
	if err := v.Unmarshal(&o); err != nil {
		return nil, fmt.Errorf("config: decoding options %q: %w", path, err)
	}

	if o.Mode != "recipe" && o.Mode != "gearset" {
		return nil, fmt.Errorf("config: options %q: mode must be \"recipe\" or \"gearset\", got %q", path, o.Mode)
	}
	if o.ScalingMode != ScalingModeRlvlGate && o.ScalingMode != ScalingModeClvlGate {
		return nil, fmt.Errorf("config: options %q: scaling_mode must be %q or %q, got %q",
			path, ScalingModeRlvlGate, ScalingModeClvlGate, o.ScalingMode)
	}

	return &o, nil
}

// WatchOptions re-invokes onChange with the freshly reloaded Options every
// time path changes on disk (SPEC_FULL.md's ambient config-watch feature,
// grounded on viper's fsnotify-backed WatchConfig).
func WatchOptions(path string, onChange func(*Options)) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("scaling_mode", ScalingModeRlvlGate)
	v.SetDefault("check_time", false)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: loading options %q: %w", path, err)
	}

	v.OnConfigChange(func(fsnotify.Event) {
		var o Options
		if err := v.Unmarshal(&o); err != nil {
			return
		}
		onChange(&o)
	})
	v.WatchConfig()
	return nil
}
