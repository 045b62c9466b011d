package midi

import (
	"fmt"
	"sort"
	"time"

	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const Resolution = smf.MetricTicks(960)

type timedMessage struct {
	tick  int64
	isOff bool
	msg   gomidi.Message
}

func toTicks(d time.Duration, bpm float64) int64 {
	quarter := time.Duration(float64(time.Minute) / bpm)
	return int64(float64(d) / float64(quarter) * float64(Resolution))
}

// Export writes resolved steps to a single track file. Sustains longer than
// their step are cut where the next step starts, matching playback.
func Export(steps []model.Step, bpm float64, channel uint8, octave int) (*smf.SMF, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("bpm must be positive, got %v", bpm)
	}

	var msgs []timedMessage
	var start int64
	for i, step := range steps {
		keys, err := Voicing(step.Notes, octave)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		end := start + toTicks(util.Min(step.Sustain, step.Duration), bpm)
		// a zero sustain is silent; an off at the same tick would sort first
		for _, key := range keys {
			if end == start {
				break
			}
			msgs = append(msgs,
				timedMessage{tick: start, msg: gomidi.NoteOn(channel, key, velocity)},
				timedMessage{tick: end, isOff: true, msg: gomidi.NoteOff(channel, key)},
			)
		}
		start += toTicks(step.Duration, bpm)
	}

	// offs before ons so repeated notes retrigger
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].isOff && !msgs[j].isOff
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))
	var last int64
	for _, m := range msgs {
		track.Add(uint32(m.tick-last), m.msg)
		last = m.tick
	}
	track.Close(uint32(start - last))

	s := smf.New()
	s.TimeFormat = Resolution
	if err := s.Add(track); err != nil {
		return nil, err
	}
	return s, nil
}
