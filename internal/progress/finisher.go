package progress

import "strings"

// Finisher is a precomputed suffix candidate (spec.md §4.4/§4.5): the fixed
// resource cost and progress yield of a short progress-letter string, run
// in isolation from a generous baseline so its cost is a constant usable in
// the beats-dominance comparison independent of any particular opener.
type Finisher struct {
	Letters               string
	Progress              int
	CP                     int
	Durability             int
	Time                   int
	HeartAndSoul           bool
	UsesTrainedPerfection bool
}

// finisherBaselineCP/Durability are generous enough that no FINISHERS entry
// ever exhausts them; the finisher's true cost is read off as the delta
// between this baseline and the simulated end state. The baseline also has
// Heart and Soul available, so Intensive Synthesis ('i') is simulated; a
// second 'i' in one finisher is still skipped, since the buff is spent.
const (
	finisherBaselineCP         = 9999
	finisherBaselineDurability = 255
)

func buildFinisher(letters string) Finisher {
	start := State{CP: finisherBaselineCP, Durability: finisherBaselineDurability, HeartAndSoul: true}
	end := Simulate(start, finisherBaselineDurability, letters)

	steps := 0
	for i := 0; i < len(letters); i++ {
		if letters[i] == 'R' || Get(letters[i]) != nil {
			steps++
		}
	}

	return Finisher{
		Letters:               letters,
		Progress:              int(end.Progress),
		CP:                     finisherBaselineCP - int(end.CP),
		Durability:             finisherBaselineDurability - int(end.Durability),
		Time:                   steps,
		HeartAndSoul:           strings.ContainsRune(letters, 'i'),
		UsesTrainedPerfection: strings.ContainsRune(letters, '*'),
	}
}

// Finishers is the fixed catalogue of finisher suffixes (spec.md §4.3's
// opener/finisher split): short, high-progress-yield sequences evaluated to
// completion-guaranteeing constants once at package init.
var Finishers = buildFinishers()

func buildFinishers() []Finisher {
	letters := []string{
		"ccc", "cc", "c",
		"bb", "b",
		"gg", "g",
		"gc", "cg",
		"pp", "p",
		"i", "ic", "ici",
		"1cc", "2cc",
		"mcc", "mccc",
		"*c", "*cc",
	}
	out := make([]Finisher, 0, len(letters))
	for _, l := range letters {
		out = append(out, buildFinisher(l))
	}
	return out
}

// Beats implements spec.md §4.4's finisher-dominance relation: a beats b iff
// a is no more expensive on every axis and does not require Heart-and-Soul
// when b doesn't.
func Beats(a, b Finisher) bool {
	if a.Letters == b.Letters {
		return false
	}
	if a.CP > b.CP || a.Durability > b.Durability || a.Time > b.Time {
		return false
	}
	if a.HeartAndSoul && !b.HeartAndSoul {
		return false
	}
	return true
}
