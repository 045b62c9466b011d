package player

import (
	"errors"
	"sync"
	"time"

	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/sched"
	"github.com/jsphweid/notewheel/session"
	"github.com/jsphweid/notewheel/sounding"
)

var ErrBadInterval = errors.New("autoplay interval must be positive")

// Autoplay cycles through the session's progression on a timer, sounding
// each chord until the next one.
type Autoplay struct {
	mu       sync.Mutex
	sess     *session.Session
	owner    sounding.Owner
	cfg      playerConfig
	interval time.Duration
	tick     sched.Timer
	running  bool
}

func NewAutoplay(sess *session.Session, opts ...Option) *Autoplay {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Autoplay{sess: sess, owner: sounding.NewOwner("autoplay"), cfg: cfg}
}

func (a *Autoplay) Owner() sounding.Owner { return a.owner }

func (a *Autoplay) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// Start sounds the current chord right away and advances every interval.
// It fails when no progression is selected.
func (a *Autoplay) Start(interval time.Duration) error {
	if interval <= 0 {
		return ErrBadInterval
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()

	notes, err := a.sess.CurrentChordNotes()
	if err != nil {
		return err
	}
	a.running = true
	a.interval = interval
	a.sound(notes)
	a.schedule()
	a.cfg.log.Info("autoplay started", "interval", interval)
	return nil
}

func (a *Autoplay) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
}

func (a *Autoplay) stopLocked() {
	if !a.running {
		return
	}
	a.running = false
	if a.tick != nil {
		a.tick.Stop()
		a.tick = nil
	}
	a.sess.ReleaseOwner(a.owner)
}

func (a *Autoplay) sound(notes model.Notes) {
	for _, n := range notes {
		if err := a.sess.NoteOn(a.owner, n); err != nil {
			a.cfg.log.Warn("skipping chord note", "note", n, "err", err)
		}
	}
	if a.cfg.onStep != nil {
		step := 0
		if c := a.sess.CurrentChord(); c != nil {
			step = c.Step
		}
		a.cfg.onStep(step, notes)
	}
}

// schedule must be called with mu held.
func (a *Autoplay) schedule() {
	var t sched.Timer
	t = a.cfg.scheduler.AfterFunc(a.interval, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if !a.running || a.tick != t {
			return
		}
		a.sess.ReleaseOwner(a.owner)
		if _, err := a.sess.NextChord(); err != nil {
			// progression was cleared underneath us
			a.cfg.log.Info("autoplay stopped", "err", err)
			a.running = false
			a.tick = nil
			return
		}
		notes, err := a.sess.CurrentChordNotes()
		if err != nil {
			a.running = false
			a.tick = nil
			return
		}
		a.sound(notes)
		a.schedule()
	})
	a.tick = t
}
