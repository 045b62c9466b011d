package player

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/scale"
	"github.com/jsphweid/notewheel/sched"
	"github.com/jsphweid/notewheel/sequence"
	"github.com/jsphweid/notewheel/session"
	"github.com/jsphweid/notewheel/sounding"
)

type Option func(*playerConfig)

type playerConfig struct {
	scheduler sched.Scheduler
	log       *slog.Logger
	onStep    func(index int, notes model.Notes)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{scheduler: sched.Realtime{}, log: slog.Default()}
}

func WithScheduler(s sched.Scheduler) Option {
	return func(cfg *playerConfig) {
		cfg.scheduler = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cfg *playerConfig) {
		cfg.log = l
	}
}

// WithStepHook is called with each event's resolved notes as it starts.
func WithStepHook(fn func(index int, notes model.Notes)) Option {
	return func(cfg *playerConfig) {
		cfg.onStep = fn
	}
}

// Handle tracks one run of a sequence.
type Handle struct {
	done chan struct{}
	once sync.Once
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) finish() {
	h.once.Do(func() { close(h.done) })
}

// Done is closed when the run reaches its end or is stopped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type run struct {
	seq    *model.Sequence
	handle *Handle
	index  int
	notes  model.Notes
	off    sched.Timer
	next   sched.Timer
}

// Sequence plays one sequence at a time into a session. Notes it sounds are
// held under its own owner, so stopping never touches notes other inputs hold.
type Sequence struct {
	mu    sync.Mutex
	sess  *session.Session
	owner sounding.Owner
	cfg   playerConfig

	// bumped by every Play and Stop, so a Play waiting on a sample load can
	// tell it has been superseded
	gen     uint64
	current *run
}

func NewSequence(sess *session.Session, opts ...Option) *Sequence {
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Sequence{sess: sess, owner: sounding.NewOwner("sequence"), cfg: cfg}
}

func (p *Sequence) Owner() sounding.Owner { return p.owner }

func (p *Sequence) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// Play cancels whatever is playing, applies the sequence's config (waiting
// for any sample load) and starts the first event. It returns once the first
// event is sounding.
func (p *Sequence) Play(ctx context.Context, seq *model.Sequence) (*Handle, error) {
	p.mu.Lock()
	p.stopLocked()
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	if err := p.sess.Apply(ctx, seq.Config); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	h := newHandle()
	if gen != p.gen {
		// a newer Play or a Stop came in while the config was loading
		h.finish()
		return h, nil
	}
	r := &run{seq: seq, handle: h}
	p.current = r
	p.cfg.log.Info("playing sequence", "events", len(seq.Events))
	p.startEvent(r, 0)
	return h, nil
}

// Stop cancels pending timers and retracts this player's notes.
func (p *Sequence) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.stopLocked()
}

func (p *Sequence) stopLocked() {
	r := p.current
	if r == nil {
		return
	}
	if r.off != nil {
		r.off.Stop()
	}
	if r.next != nil {
		r.next.Stop()
	}
	p.current = nil
	p.sess.ReleaseOwner(p.owner)
	r.handle.finish()
}

func (p *Sequence) resolve(notes []model.NoteSpec) model.Notes {
	var res model.Notes
	p.sess.WithScale(func(e *scale.Engine) {
		res = sequence.ResolveNotes(notes, e)
	})
	return res
}

// startEvent must be called with mu held.
func (p *Sequence) startEvent(r *run, index int) {
	if index >= len(r.seq.Events) {
		p.current = nil
		p.sess.ReleaseOwner(p.owner)
		r.handle.finish()
		p.cfg.log.Debug("sequence finished")
		return
	}

	e := r.seq.Events[index]
	r.index = index
	r.notes = p.resolve(e.Notes)
	if p.cfg.onStep != nil {
		p.cfg.onStep(index, r.notes)
	}
	for _, n := range r.notes {
		if err := p.sess.NoteOn(p.owner, n); err != nil {
			p.cfg.log.Warn("skipping note", "event", index+1, "note", n, "err", err)
		}
	}

	notes := r.notes
	r.off = p.cfg.scheduler.AfterFunc(e.Sustain, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.current != r || r.index != index {
			return
		}
		p.release(notes)
		r.off = nil
	})
	r.next = p.cfg.scheduler.AfterFunc(e.Duration, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.current != r || r.index != index {
			return
		}
		// sustain can outlast duration; cut it so events do not pile up
		if r.off != nil {
			r.off.Stop()
			r.off = nil
			p.release(notes)
		}
		p.startEvent(r, index+1)
	})
}

func (p *Sequence) release(notes model.Notes) {
	for _, n := range notes {
		if err := p.sess.NoteOff(p.owner, n); err != nil {
			p.cfg.log.Debug("could not release note", "note", n, "err", err)
		}
	}
}
