package chord

import (
	"sort"
	"strings"

	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
)

type OnNotes = map[string]bool

// CreateChordKey makes a stable key for a set of sounding notes.
func CreateChordKey(notes []string) string {
	return strings.Join(pitch.Sort(notes), "-")
}

func toSet(notes []string) OnNotes {
	res := make(OnNotes, len(notes))
	for _, n := range notes {
		res[n] = true
	}
	return res
}

// Matches treats every sounding note as a candidate root and reports every
// catalog chord whose notes are all sounding. Roots are visited in pitch
// order and chord types in catalog order. Nothing is filtered or ranked here.
func Matches(sounding []string) []model.ChordMatch {
	on := toSet(sounding)
	var res []model.ChordMatch
	for _, root := range pitch.Sort(sounding) {
		if !pitch.IsValid(root) {
			continue
		}
	CatalogLoop:
		for _, t := range catalog {
			notes, _ := spell(root, t.Intervals)
			for _, n := range notes {
				if !on[n] {
					continue CatalogLoop
				}
			}
			res = append(res, model.ChordMatch{Root: root, Suffix: t.Suffix, Notes: notes})
		}
	}
	return res
}

// Detect is Matches keyed by chord name, e.g. "C7" -> [C E G A#].
func Detect(sounding []string) map[string]model.Notes {
	res := make(map[string]model.Notes)
	for _, m := range Matches(sounding) {
		res[m.Name()] = m.Notes
	}
	return res
}

// Display drops fifth matches whose root also forms a richer chord.
func Display(matches []model.ChordMatch) []model.ChordMatch {
	richer := make(map[string]bool)
	for _, m := range matches {
		if m.Suffix != Fifth {
			richer[m.Root] = true
		}
	}
	var res []model.ChordMatch
	for _, m := range matches {
		if m.Suffix == Fifth && richer[m.Root] {
			continue
		}
		res = append(res, m)
	}
	return res
}

func catalogIndex(suffix string) int {
	for i, t := range catalog {
		if t.Suffix == suffix {
			return i
		}
	}
	return len(catalog)
}

// RankSort puts chords with more notes first, then by root and catalog order.
func RankSort(matches []model.ChordMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if len(a.Notes) != len(b.Notes) {
			return len(a.Notes) > len(b.Notes)
		}
		ai, _ := pitch.NameToIndex(a.Root)
		bi, _ := pitch.NameToIndex(b.Root)
		if ai != bi {
			return ai < bi
		}
		return catalogIndex(a.Suffix) < catalogIndex(b.Suffix)
	})
}
