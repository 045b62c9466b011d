package midi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/chord"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/jsphweid/notewheel/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrUnreadableMidi = errors.New("unreadable midi file")

func unreadable(name string, err error) error {
	return fault.Wrap(fmt.Errorf("%w: %w", ErrUnreadableMidi, err),
		fmsg.WithDesc(name, name+" is not a standard midi file."),
		ftag.With(ftag.InvalidArgument),
	)
}

// ReadMidi parses a standard midi file. The smf reader can panic on
// truncated input (https://github.com/gomidi/midi/issues/20), which is
// reported as an error instead.
func ReadMidi(name string, r io.Reader) (s *smf.SMF, err error) {
	defer func() {
		switch p := recover().(type) {
		case nil:
		case error:
			s, err = nil, unreadable(name, p)
		default:
			s, err = nil, unreadable(name, fmt.Errorf("%v", p))
		}
	}()

	s, err = smf.ReadFrom(r)
	if err != nil {
		return nil, unreadable(name, err)
	}
	return s, nil
}

func ReadMidiFile(path string) (*smf.SMF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMidi(path, bufio.NewReader(f))
}

// NoteName maps a midi key to its pitch class name.
func NoteName(key uint8) string {
	// midi counts from C, the wheel counts from A
	name, _ := pitch.IndexToName(util.Mod(int(key)+3, pitch.NumPitchClasses))
	return name
}

// Key is the midi key of note in the given octave, with C4 = 60.
func Key(note string, octave int) (uint8, error) {
	i, err := pitch.NameToIndex(note)
	if err != nil {
		return 0, err
	}
	key := 12*(octave+1) + util.Mod(i-3, pitch.NumPitchClasses)
	if key < 0 || key > 127 {
		return 0, fmt.Errorf("note %v in octave %v is outside the midi range", note, octave)
	}
	return uint8(key), nil
}

// Voicing stacks notes upwards from the first one, each note placed at the
// nearest key above the one before it.
func Voicing(notes []string, octave int) ([]uint8, error) {
	var res []uint8
	for i, n := range notes {
		key, err := Key(n, octave)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			prev := res[i-1]
			for key <= prev {
				key += 12
			}
		}
		if key > 127 {
			return nil, fmt.Errorf("voicing of %v runs past the midi range", notes)
		}
		res = append(res, key)
	}
	return res, nil
}

type Snapshot struct {
	Offset time.Duration
	Notes  model.Notes
}

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	key       uint8
}

// Snapshots walks every track and reports the set of sounding pitch classes
// each time it changes. Silent stretches are left out.
func Snapshots(s *smf.SMF) []Snapshot {
	var reducedEvents []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				reducedEvents = append(reducedEvents, reducedEvent{offset: absTime, key: key})
			case event.Message.GetNoteEnd(&channel, &key):
				reducedEvents = append(reducedEvents, reducedEvent{offset: absTime, isNoteOff: true, key: key})
			}
		}
	}

	// prioritize smaller offset values then note off
	sort.SliceStable(reducedEvents, func(i, j int) bool {
		if reducedEvents[i].offset != reducedEvents[j].offset {
			return reducedEvents[i].offset < reducedEvents[j].offset
		}
		return reducedEvents[i].isNoteOff && !reducedEvents[j].isNoteOff
	})

	var res []Snapshot
	pressed := make(map[uint8]int)
	lastKey := ""
	for i, evt := range reducedEvents {
		if evt.isNoteOff {
			if pressed[evt.key] > 0 {
				pressed[evt.key]--
			}
			if pressed[evt.key] == 0 {
				delete(pressed, evt.key)
			}
		} else {
			pressed[evt.key]++
		}

		// only look once every event at this offset is applied
		if i+1 < len(reducedEvents) && reducedEvents[i+1].offset == evt.offset {
			continue
		}

		var notes []string
		for key := range pressed {
			notes = append(notes, NoteName(key))
		}
		notes = pitch.Sort(notes)
		chordKey := chord.CreateChordKey(notes)
		if chordKey == lastKey {
			continue
		}
		lastKey = chordKey
		if len(notes) > 0 {
			res = append(res, Snapshot{Offset: time.Duration(evt.offset) * time.Microsecond, Notes: notes})
		}
	}
	return res
}
