package midi

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const velocity = 100

// general midi programs for the instruments the wheel knows by name
var programs = map[string]uint8{
	"Piano":   0,
	"Harp":    46,
	"Organ":   19,
	"Guitar":  24,
	"Strings": 48,
	"Flute":   73,
}

func Program(instrument string) uint8 {
	return programs[instrument]
}

// Out is a voice that drives a midi output instead of samples.
type Out struct {
	mu      sync.Mutex
	send    func(gomidi.Message) error
	channel uint8
	octave  int
	log     *slog.Logger
	keys    map[string]uint8
}

func NewOut(send func(gomidi.Message) error, channel uint8, octave int, log *slog.Logger) *Out {
	if log == nil {
		log = slog.Default()
	}
	return &Out{
		send:    send,
		channel: channel,
		octave:  octave,
		log:     log,
		keys:    make(map[string]uint8),
	}
}

// OpenOut finds an output port by name. The driver must already be
// registered by the caller.
func OpenOut(name string, channel uint8, octave int, log *slog.Logger) (*Out, error) {
	port, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("could not find midi out %q: %w", name, err)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("could not open midi out %q: %w", name, err)
	}
	return NewOut(send, channel, octave, log), nil
}

func (o *Out) LoadInstrument(ctx context.Context, instrument string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.send(gomidi.ProgramChange(o.channel, Program(instrument)))
}

func (o *Out) Trigger(_ string, note string) {
	key, err := Key(note, o.octave)
	if err != nil {
		o.log.Debug("no key for note", "note", note, "err", err)
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.send(gomidi.NoteOn(o.channel, key, velocity)); err != nil {
		o.log.Warn("midi note on failed", "note", note, "err", err)
		return
	}
	o.keys[note] = key
}

func (o *Out) Release(_ string, note string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	key, ok := o.keys[note]
	if !ok {
		return
	}
	delete(o.keys, note)
	if err := o.send(gomidi.NoteOff(o.channel, key)); err != nil {
		o.log.Warn("midi note off failed", "note", note, "err", err)
	}
}

// Listen calls fn for every note start and end arriving on in, reduced to
// pitch class names. Call stop to detach.
func Listen(in drivers.In, fn func(on bool, note string)) (stop func(), err error) {
	return gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var channel, key, vel uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &vel):
			fn(true, NoteName(key))
		case msg.GetNoteEnd(&channel, &key):
			fn(false, NoteName(key))
		}
	})
}

func OpenIn(name string) (drivers.In, error) {
	port, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("could not find midi in %q: %w", name, err)
	}
	return port, nil
}

func CloseDriver() {
	gomidi.CloseDriver()
}
