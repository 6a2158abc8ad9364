package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRecipe(t *testing.T) {
	Convey("Given a well-formed recipe file", t, func() {
		path := writeTemp(t, "recipe.json", `{
			"cp": 300, "cms": 3000, "ctrl": 3000, "rlvl": 560,
			"dur": 40, "prog": 1000, "qual": 5000, "has": false
		}`)

		Convey("LoadRecipe decodes every field", func() {
			r, err := LoadRecipe(path)
			So(err, ShouldBeNil)
			So(r.CP, ShouldEqual, 300)
			So(r.Dur, ShouldEqual, 40)
			So(r.HeartAndSoul, ShouldBeFalse)
		})
	})

	Convey("Given a recipe file missing required fields", t, func() {
		path := writeTemp(t, "recipe.json", `{"cp": 300}`)

		Convey("LoadRecipe reports an error", func() {
			_, err := LoadRecipe(path)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a nonexistent file", t, func() {
		Convey("LoadRecipe reports an error", func() {
			_, err := LoadRecipe("/nonexistent/recipe.json")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLoadOptions(t *testing.T) {
	Convey("Given an options file without scaling_mode or check_time", t, func() {
		path := writeTemp(t, "options.json", `{
			"mode": "recipe",
			"recipe_file": "recipe.json",
			"bounds": {"cms": [2500, 3500], "ctrl": [2500, 3500], "cp": [500, 700]}
		}`)

		Convey("defaults are applied", func() {
			o, err := LoadOptions(path)
			So(err, ShouldBeNil)
			So(o.ScalingMode, ShouldEqual, ScalingModeRlvlGate)
			So(o.CheckTime, ShouldBeFalse)
		})
	})

	Convey("Given an options file with an invalid mode", t, func() {
		path := writeTemp(t, "options.json", `{"mode": "bogus"}`)

		Convey("LoadOptions reports an error", func() {
			_, err := LoadOptions(path)
			So(err, ShouldNotBeNil)
		})
	})
}
