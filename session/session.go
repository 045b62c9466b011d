package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/notewheel/chord"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/jsphweid/notewheel/progression"
	"github.com/jsphweid/notewheel/scale"
	"github.com/jsphweid/notewheel/sounding"
)

// Voice is the audio side: it loads an instrument's samples and fires them.
// Trigger and Release must not block and must tolerate notes that never loaded.
type Voice interface {
	LoadInstrument(ctx context.Context, instrument string) error
	Trigger(instrument string, note string)
	Release(instrument string, note string)
}

type nopVoice struct{}

func (nopVoice) LoadInstrument(context.Context, string) error { return nil }
func (nopVoice) Trigger(string, string)                       {}
func (nopVoice) Release(string, string)                       {}

// NopVoice keeps all state changes but makes no sound.
var NopVoice Voice = nopVoice{}

type Option func(*Session)

func WithVoice(v Voice) Option {
	return func(s *Session) {
		s.voice = v
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithOnChange installs a hook that receives the session state once things
// settle for delay after a burst of changes.
func WithOnChange(delay time.Duration, fn func(model.State)) Option {
	return func(s *Session) {
		s.debounced = debounce.New(delay)
		s.onChange = fn
	}
}

func WithDisplay(d model.Display) Option {
	return func(s *Session) {
		s.display = d
	}
}

// Session is everything one user's wheel owns. All methods are safe for
// concurrent use.
type Session struct {
	mu      sync.Mutex
	id      string
	scale   *scale.Engine
	prog    progression.Engine
	notes   *sounding.Set
	display model.Display
	// instrument each sounding note was triggered on
	voiced map[string]string
	voice  Voice
	log    *slog.Logger

	debounced func(f func())
	onChange  func(model.State)
}

func New(root string, scaleType string, opts ...Option) (*Session, error) {
	engine, err := scale.NewEngine(root, scaleType)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:     uuid.NewString(),
		scale:  engine,
		notes:  sounding.New(),
		voiced: make(map[string]string),
		voice:  NopVoice,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.id)
	return s, nil
}

func (s *Session) Id() string { return s.id }

// changed must be called with mu held.
func (s *Session) changed() {
	if s.onChange == nil {
		return
	}
	s.debounced(func() {
		s.onChange(s.State())
	})
}

func (s *Session) SetScale(root string, scaleType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scale.SetScale(root, scaleType); err != nil {
		return err
	}
	s.log.Debug("scale set", "root", root, "type", scaleType)
	s.changed()
	return nil
}

func (s *Session) Scale() model.ScaleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale.State()
}

func (s *Session) DegreeChords() []model.DegreeChord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scale.DegreeChords()
}

// WithScale runs fn against the live scale engine while holding the session.
func (s *Session) WithScale(fn func(e *scale.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.scale)
}

func (s *Session) Display() model.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.display
}

// NoteOn adds owner's claim on note. The voice fires only when the note was
// silent before.
func (s *Session) NoteOn(owner sounding.Owner, note string) error {
	if !pitch.IsValid(note) {
		_, err := pitch.NameToIndex(note)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notes.Add(owner, note) {
		s.voiced[note] = s.display.Temperament
		s.voice.Trigger(s.display.Temperament, note)
		s.changed()
	}
	return nil
}

// NoteOff drops owner's claim. Claims held by other owners keep sounding.
func (s *Session) NoteOff(owner sounding.Owner, note string) error {
	if !pitch.IsValid(note) {
		_, err := pitch.NameToIndex(note)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notes.Remove(owner, note) {
		s.release(note)
		s.changed()
	}
	return nil
}

// release silences note on the instrument it was triggered on, which may no
// longer be the current one. Must be called with mu held.
func (s *Session) release(note string) {
	instrument, ok := s.voiced[note]
	if !ok {
		instrument = s.display.Temperament
	}
	delete(s.voiced, note)
	s.voice.Release(instrument, note)
}

// ReleaseOwner retracts everything owner is holding and nothing else.
func (s *Session) ReleaseOwner(owner sounding.Owner) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	silenced := s.notes.RemoveOwner(owner)
	for _, n := range silenced {
		s.release(n)
	}
	if len(silenced) > 0 {
		s.changed()
	}
	return silenced
}

// StopAll silences every note regardless of who added it.
func (s *Session) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	silenced := s.notes.Clear()
	for _, n := range silenced {
		s.release(n)
	}
	if len(silenced) > 0 {
		s.changed()
	}
}

func (s *Session) Sounding() model.Notes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Notes()
}

func (s *Session) Detect() map[string]model.Notes {
	return chord.Detect(s.Sounding())
}

// DisplayChords is what the wheel shows: no fifths shadowed by a richer
// chord on the same root, biggest chords first.
func (s *Session) DisplayChords() []model.ChordMatch {
	res := chord.Display(chord.Matches(s.Sounding()))
	chord.RankSort(res)
	return res
}

func (s *Session) SetProgression(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prog.SetProgression(name); err != nil {
		return err
	}
	s.changed()
	return nil
}

func (s *Session) NextChord() (*model.ProgressionChord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prog.Next(); err != nil {
		return nil, err
	}
	s.changed()
	return s.prog.CurrentChord(s.scale), nil
}

func (s *Session) PreviousChord() (*model.ProgressionChord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.prog.Previous(); err != nil {
		return nil, err
	}
	s.changed()
	return s.prog.CurrentChord(s.scale), nil
}

func (s *Session) CurrentChord() *model.ProgressionChord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prog.CurrentChord(s.scale)
}

func (s *Session) CurrentChordNotes() (model.Notes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prog.CurrentChordNotes(s.scale)
}

// Apply merges a sequence config patch into the session. A new temperament
// is loaded first; if loading fails the session switches anyway and the
// missing samples simply stay silent.
func (s *Session) Apply(ctx context.Context, c model.SequenceConfig) error {
	if c.Temperament != nil {
		if err := s.voice.LoadInstrument(ctx, *c.Temperament); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Warn("could not load instrument, playing silently", "instrument", *c.Temperament, "err", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c.Root != nil || c.Scale != nil {
		root, name := s.scale.Root(), s.scale.Type()
		if c.Root != nil {
			root = *c.Root
		}
		if c.Scale != nil {
			name = *c.Scale
		}
		if err := s.scale.SetScale(root, name); err != nil {
			return err
		}
	}
	if c.Temperament != nil {
		s.display.Temperament = *c.Temperament
	}
	if c.Fifths != nil {
		s.display.Fifths = *c.Fifths
	}
	if c.ChromaticColors != nil {
		s.display.ChromaticColors = *c.ChromaticColors
	}
	s.changed()
	return nil
}

// State is a snapshot for the visualization.
func (s *Session) State() model.State {
	s.mu.Lock()
	sounding := s.notes.Notes()
	st := model.State{
		SessionId:   s.id,
		Scale:       s.scale.State(),
		Display:     s.display,
		Sounding:    sounding,
		Progression: s.prog.CurrentChord(s.scale),
	}
	s.mu.Unlock()

	st.Chords = chord.Display(chord.Matches(sounding))
	chord.RankSort(st.Chords)
	return st
}
