package pitch

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/util"
)

var ErrInvalidNote = errors.New("invalid note")

const NumPitchClasses = 12

var names = [NumPitchClasses]string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}

var indexes = map[string]int{
	"A": 0, "A#": 1, "B": 2, "C": 3, "C#": 4, "D": 5,
	"D#": 6, "E": 7, "F": 8, "F#": 9, "G": 10, "G#": 11,
}

// NOTE: kept as a table rather than computed so the wheel ordering is explicit
var fifths = map[string]string{
	"A": "E", "E": "B", "B": "F#", "F#": "C#", "C#": "G#", "G#": "D#",
	"D#": "A#", "A#": "F", "F": "C", "C": "G", "G": "D", "D": "A",
}

func invalid(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fault.Wrap(ErrInvalidNote,
		fmsg.WithDesc(msg, "That is not one of the 12 note names."),
		ftag.With(ftag.InvalidArgument),
	)
}

// Names returns the 12 note names in index order, starting at A.
func Names() []string {
	res := make([]string, NumPitchClasses)
	copy(res, names[:])
	return res
}

func IsValid(name string) bool {
	_, ok := indexes[name]
	return ok
}

func NameToIndex(name string) (int, error) {
	i, ok := indexes[name]
	if !ok {
		return 0, invalid("note %q", name)
	}
	return i, nil
}

func IndexToName(i int) (string, error) {
	if i < 0 || i >= NumPitchClasses {
		return "", invalid("note index %d", i)
	}
	return names[i], nil
}

// Transpose moves name by n semitones, wrapping around the octave.
func Transpose(name string, n int) (string, error) {
	i, err := NameToIndex(name)
	if err != nil {
		return "", err
	}
	return names[util.Mod(i+n, NumPitchClasses)], nil
}

// Interval is the ascending distance in semitones from one note to another.
func Interval(from, to string) (int, error) {
	a, err := NameToIndex(from)
	if err != nil {
		return 0, err
	}
	b, err := NameToIndex(to)
	if err != nil {
		return 0, err
	}
	return util.Mod(b-a, NumPitchClasses), nil
}

func FifthOf(name string) (string, error) {
	res, ok := fifths[name]
	if !ok {
		return "", invalid("note %q", name)
	}
	return res, nil
}

// FifthsFrom walks the circle of fifths once, starting at root.
func FifthsFrom(root string) ([]string, error) {
	if !IsValid(root) {
		return nil, invalid("note %q", root)
	}
	res := make([]string, 0, NumPitchClasses)
	curr := root
	for i := 0; i < NumPitchClasses; i++ {
		res = append(res, curr)
		curr = fifths[curr]
	}
	return res, nil
}

// Sort orders note names by pitch index. Unknown names go last, in input order.
func Sort(notes []string) []string {
	res := make([]string, 0, len(notes))
	var unknown []string
	present := make(map[string]bool)
	for _, n := range notes {
		if IsValid(n) {
			present[n] = true
		} else {
			unknown = append(unknown, n)
		}
	}
	for _, n := range names {
		if present[n] {
			res = append(res, n)
		}
	}
	return append(res, unknown...)
}
