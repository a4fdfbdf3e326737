package narrator

import (
	"fmt"
	"strings"
)

// phraseSet is one row of the per-signal phrase table: a display label, the
// two band thresholds and a sentence template per band. A value >= High takes
// the positive template, >= Low the neutral one, anything below the negative
// one. Templates take the signal's mean as a single %.1f argument.
type phraseSet struct {
	Label    string
	High     float64
	Low      float64
	Positive string
	Neutral  string
	Negative string
}

// phrases maps signal names to their phrase sets. New venue categories extend
// this table instead of adding branches anywhere else; baseball's signals
// reuse the same band mechanics with their own wording.
var phrases = map[string]phraseSet{
	"parking": {
		Label:    "Parking",
		High:     3.5,
		Low:      2.5,
		Positive: "Parking is easy here (%.1f/5).",
		Neutral:  "Parking is manageable (%.1f/5).",
		Negative: "Plan extra time for parking (%.1f/5).",
	},
	"cold": {
		Label:    "Cold",
		High:     3.5,
		Low:      2.0,
		Positive: "Temperature-wise the rink is comfortable (%.1f/5).",
		Neutral:  "Bring a jacket, it runs chilly (%.1f/5).",
		Negative: "Bundle up, this rink is freezing (%.1f/5).",
	},
	"food_nearby": {
		Label:    "Food nearby",
		High:     3.5,
		Low:      2.5,
		Positive: "Good food options nearby (%.1f/5).",
		Neutral:  "Some food options within reach (%.1f/5).",
		Negative: "Eat before you come, food is scarce (%.1f/5).",
	},
	"chaos": {
		Label:    "Chaos",
		High:     3.5,
		Low:      2.0,
		Positive: "Game days run smoothly here (%.1f/5).",
		Neutral:  "Expect some game-day chaos (%.1f/5).",
		Negative: "Brace yourself for hectic game days (%.1f/5).",
	},
	"family_friendly": {
		Label:    "Family friendly",
		High:     3.5,
		Low:      2.5,
		Positive: "Very family friendly (%.1f/5).",
		Neutral:  "Reasonably family friendly (%.1f/5).",
		Negative: "Not the easiest spot with younger siblings (%.1f/5).",
	},
	"locker_rooms": {
		Label:    "Locker rooms",
		High:     3.5,
		Low:      2.5,
		Positive: "Locker rooms get good marks (%.1f/5).",
		Neutral:  "Locker rooms are serviceable (%.1f/5).",
		Negative: "Locker rooms are rough (%.1f/5).",
	},
	"pro_shop": {
		Label:    "Pro shop",
		High:     3.5,
		Low:      2.5,
		Positive: "The pro shop has you covered (%.1f/5).",
		Neutral:  "The pro shop covers the basics (%.1f/5).",
		Negative: "Don't count on the pro shop for forgotten gear (%.1f/5).",
	},
	"heat": {
		Label:    "Heat",
		High:     3.5,
		Low:      2.0,
		Positive: "Heat is manageable at this field (%.1f/5).",
		Neutral:  "It gets warm out there, pack water (%.1f/5).",
		Negative: "Brutal heat, shade and water are a must (%.1f/5).",
	},
	"dugouts": {
		Label:    "Dugouts",
		High:     3.5,
		Low:      2.5,
		Positive: "Dugouts are in good shape (%.1f/5).",
		Neutral:  "Dugouts are adequate (%.1f/5).",
		Negative: "Dugouts have seen better days (%.1f/5).",
	},
	"batting_cages": {
		Label:    "Batting cages",
		High:     3.5,
		Low:      2.5,
		Positive: "Batting cages are a highlight (%.1f/5).",
		Neutral:  "Batting cages are usable (%.1f/5).",
		Negative: "Skip the batting cages (%.1f/5).",
	},
}

// signalSentence renders the banded sentence for a signal. Unknown signals
// never fail; they fall through to a generic "{Label}: {value}/5." line.
func signalSentence(name string, value float64) string {
	ps, ok := phrases[name]
	if !ok {
		return fmt.Sprintf("%s: %.1f/5.", signalLabel(name), value)
	}
	switch {
	case value >= ps.High:
		return fmt.Sprintf(ps.Positive, value)
	case value >= ps.Low:
		return fmt.Sprintf(ps.Neutral, value)
	default:
		return fmt.Sprintf(ps.Negative, value)
	}
}

// signalLabel returns the configured label, or a title-cased fallback built
// from the signal name for signals outside the table.
func signalLabel(name string) string {
	if ps, ok := phrases[name]; ok {
		return ps.Label
	}
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
