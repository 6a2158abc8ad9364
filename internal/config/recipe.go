package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Recipe is the on-disk recipe file (spec.md §6): difficulty, required
// progress/quality, durability, CP budget, recipe-level flags, and the
// crafter's stats used to derive the progress/quality scalings (§4.4).
type Recipe struct {
	CP   uint16 `mapstructure:"cp"`
	Cms  uint16 `mapstructure:"cms"`
	Ctrl uint16 `mapstructure:"ctrl"`
	Rlvl uint16 `mapstructure:"rlvl"`

	Dur  uint8  `mapstructure:"dur"`
	Prog uint32 `mapstructure:"prog"`
	Qual uint32 `mapstructure:"qual"`

	// ReqQual overrides Qual as the search's actual quality target when the
	// two differ (e.g. a collectable/scrip turn-in requiring less than the
	// recipe's own 100% reference quality). Optional; nil means "use Qual"
	// (`_examples/original_source/src/statline.rs`'s `Recipe.reqqual`).
	ReqQual *uint32 `mapstructure:"reqqual"`

	HeartAndSoul bool `mapstructure:"has"`

	// Time is optional: present only for time-checked searches (spec.md §4.4
	// time-bounded variant). Zero means "not specified".
	Time int `mapstructure:"time"`

	// Materials is carried through from the recipe file but unused by the
	// search itself (spec.md §1 excludes material/HQ-ingredient modelling).
	Materials []string `mapstructure:"materials"`
}

// LoadRecipe reads and validates a recipe file at path (spec.md §6, §7 kind
// 1: "config load failure" covers both options.json and the recipe file).
func LoadRecipe(path string) (*Recipe, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: loading recipe %q: %w", path, err)
	}

	var r Recipe
	if err := v.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("config: decoding recipe %q: %w", path, err)
	}

	if r.Dur == 0 || r.Prog == 0 {
		return nil, fmt.Errorf("config: recipe %q is missing required dur/prog fields", path)
	}

	return &r, nil
}

// TargetQuality returns the quality a solve must actually clear: ReqQual
// when the recipe specifies one, otherwise Qual (spec.md §3/§6's "required
// quality", refined by statline.rs's reqqual-override concept — see
// SPEC_FULL.md §3).
func (r *Recipe) TargetQuality() uint32 {
	if r.ReqQual != nil {
		return *r.ReqQual
	}
	return r.Qual
}

// MaxDurUnits converts the recipe's raw durability to the 5-point internal
// units the Progress Simulator and Quality DP Engine both operate in
// (spec.md §3's progress/quality state tables).
func (r *Recipe) MaxDurUnits() uint8 {
	return uint8(r.Dur / 5)
}
