package sequence

import "github.com/jsphweid/notewheel/model"

// Scale is what note references are resolved against.
type Scale interface {
	NoteForDegree(d int) string
	NoteForChromaticOffset(n int) string
}

// Resolve turns a note reference into a note name using the scale as it is
// right now. Raw tokens come back unchanged.
func Resolve(n model.NoteSpec, s Scale) string {
	switch n.Kind {
	case model.NoteAbsolute:
		return n.Name
	case model.NoteDegree:
		return s.NoteForDegree(n.Value)
	case model.NoteOffset:
		return s.NoteForChromaticOffset(n.Value)
	default:
		return n.Text
	}
}

func ResolveNotes(notes []model.NoteSpec, s Scale) model.Notes {
	res := make(model.Notes, 0, len(notes))
	for _, n := range notes {
		res = append(res, Resolve(n, s))
	}
	return res
}

// ResolveAll resolves every event up front against one scale. Players resolve
// lazily instead, since a sequence may change the scale while it runs.
func ResolveAll(seq *model.Sequence, s Scale) []model.Step {
	steps := make([]model.Step, 0, len(seq.Events))
	for _, e := range seq.Events {
		steps = append(steps, model.Step{
			Notes:    ResolveNotes(e.Notes, s),
			Duration: e.Duration,
			Sustain:  e.Sustain,
		})
	}
	return steps
}
