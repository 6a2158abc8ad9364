// Command craftsolve computes optimal crafting rotations for a recipe, or
// enumerates the Pareto frontier of minimal crafter stats that can complete
// one (spec.md §1).
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"

	"craftsolve/internal/config"
	"craftsolve/internal/gearset"
	"craftsolve/internal/macro"
	"craftsolve/internal/progress"
	"craftsolve/internal/qualstate"
	"craftsolve/internal/search"
	"craftsolve/internal/watch"
)

var (
	optionsPath *string
	dbg         *bool
	watchFlag   *bool
	host        *string
	port        *string
)

func init() {
	optionsPath = flag.String("options", "options.json", "path to the options.json configuration file")
	dbg = flag.Bool("debug", false, "debug mode")
	watchFlag = flag.Bool("watch", false, "enable the live-progress dashboard (overrides options.json's watch field when set)")
	host = flag.String("host", "", "dashboard listen host, overriding options.json's watch_addr (default: use watch_addr as-is)")
	port = flag.String("port", "", "dashboard listen port, overriding options.json's watch_addr (default: use watch_addr as-is)")
	flag.Parse()
}

// watchAddr resolves the dashboard listen address: -host/-port override the
// host/port embedded in options.json's watch_addr, which is itself the
// fallback when neither flag is set.
func watchAddr(opts *config.Options) string {
	if *host == "" && *port == "" {
		return opts.WatchAddr
	}
	h, p, err := net.SplitHostPort(opts.WatchAddr)
	if err != nil {
		h, p = "", "8080"
	}
	if *host != "" {
		h = *host
	}
	if *port != "" {
		p = *port
	}
	return net.JoinHostPort(h, p)
}

// runApp implements spec.md §6/§7: load options and recipe, dispatch on
// mode, print the result, and report the caller's exit status.
func runApp() (exitCode int, err error) {
	opts, err := config.LoadOptions(*optionsPath)
	if err != nil {
		return 1, err
	}

	recipe, err := config.LoadRecipe(opts.RecipeFile)
	if err != nil {
		return 1, err
	}

	var tracker *watch.Tracker
	if opts.Watch || *watchFlag {
		tracker = watch.NewTracker(len(progress.Openers), recipe.TargetQuality())
		startWatchDashboard(watchAddr(opts), tracker)
	}

	switch opts.Mode {
	case "recipe":
		return runRecipeMode(opts, recipe, tracker)
	case "gearset":
		return runGearsetMode(opts, recipe, tracker)
	default:
		return 1, fmt.Errorf("craftsolve: unknown mode %q", opts.Mode)
	}
}

// startWatchDashboard launches the optional live-progress dashboard
// (internal/watch) in the background; it runs for the lifetime of the
// process and is never joined, matching spec.md §9's note that the
// dashboard is a non-normative side channel, not part of the solver's
// contract.
func startWatchDashboard(addr string, tracker *watch.Tracker) {
	dash := watch.NewDashboard(addr, tracker)
	go func() {
		if err := dash.Serve(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()
}

// runRecipeMode implements spec.md §4.4's single-recipe search, printing the
// winning macro (spec.md §6) or reporting infeasibility (spec.md §7 kind 3,
// which is not itself an error: the program still exits 0).
func runRecipeMode(opts *config.Options, recipe *config.Recipe, tracker *watch.Tracker) (int, error) {
	driver := search.NewDriver(recipe, opts.ScalingMode, opts.CheckTime)

	if tracker != nil {
		tracker.BindCache(driver.Engine.Cache.Len)
		driver.Progress = tracker.Report
		defer tracker.MarkDone()
	}

	if opts.InCache != "" {
		f, err := os.Open(opts.InCache)
		if err != nil {
			return 1, fmt.Errorf("craftsolve: loading cache: %w", err)
		}
		defer f.Close()
		if err := driver.Engine.Load(f); err != nil {
			return 1, fmt.Errorf("craftsolve: loading cache: %w", err)
		}
	}

	var best *search.Candidate
	if opts.CheckTime {
		best = driver.SearchTimeBound(60, qualstate.MaxTime)
	} else {
		best = driver.Search(0)
	}

	if opts.OutCache != "" {
		f, err := os.Create(opts.OutCache)
		if err != nil {
			return 1, fmt.Errorf("craftsolve: persisting cache: %w", err)
		}
		defer f.Close()
		if err := driver.Engine.Dump(f); err != nil {
			return 1, fmt.Errorf("craftsolve: persisting cache: %w", err)
		}
	}

	if best == nil || best.DeliveredQuality < recipe.TargetQuality() {
		delivered := uint32(0)
		if best != nil {
			delivered = best.DeliveredQuality
		}
		fmt.Printf("no rotation meets the required quality (best %d < required %d)\n", delivered, recipe.TargetQuality())
		return 0, nil
	}

	for _, line := range macro.Full(best.Opener, best.Extra, best.Finisher, best.Steps) {
		fmt.Println(line)
	}
	fmt.Printf("# delivered quality: %d\n", best.DeliveredQuality)
	return 0, nil
}

// runGearsetMode implements spec.md §4.6: print the Pareto-minimal set of
// (cms, ctrl, cp) solutions.
func runGearsetMode(opts *config.Options, recipe *config.Recipe, tracker *watch.Tracker) (int, error) {
	target := gearset.Target{
		Rlvl:            recipe.Rlvl,
		Dur:             recipe.Dur,
		RequiredProg:    recipe.Prog,
		RequiredQual:    recipe.TargetQuality(),
		GrantsHeartSoul: recipe.HeartAndSoul,
		ScalingMode:     opts.ScalingMode,
	}
	bounds := gearset.Bounds{
		CmsLo: opts.Bounds.Cms[0], CmsHi: opts.Bounds.Cms[1],
		CtrlLo: opts.Bounds.Ctrl[0], CtrlHi: opts.Bounds.Ctrl[1],
		CPLo: opts.Bounds.CP[0], CPHi: opts.Bounds.CP[1],
	}

	var report func(cpTried, cpHi uint16, frontier []gearset.Solution)
	if tracker != nil {
		report = func(cpTried, cpHi uint16, frontier []gearset.Solution) {
			tracker.ReportGearset(int(cpTried-bounds.CPLo+1), int(cpHi-bounds.CPLo+1), len(frontier))
		}
		defer tracker.MarkDone()
	}

	solutions := gearset.Solve(recipe, target, bounds, report)
	for _, s := range solutions {
		fmt.Printf("cms=%d ctrl=%d cp=%d heart_and_soul=%v\n", s.Cms, s.Ctrl, s.CP, s.UsesHas)
	}
	return 0, nil
}

func main() {
	code, err := runApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}
