package sample

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/jsphweid/notewheel/pitch"
)

var ErrSampleLoad = errors.New("sample load failed")

// ebiten allows one audio context per process
var (
	audioContextOnce sync.Once
	audioContext     *audio.Context
	audioSampleRate  int
)

func sharedAudioContext(sampleRate int) (*audio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = audio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

func loadFailed(instrument string, err error) error {
	return fault.Wrap(ErrSampleLoad,
		fmsg.WithDesc(fmt.Sprintf("instrument %v: %v", instrument, err), "The samples for "+instrument+" could not be loaded."),
		ftag.With(ftag.Internal),
	)
}

// Bank holds one player per note for every instrument loaded so far.
// Samples live at <dir>/<instrument>/<note>.wav.
type Bank struct {
	dir  string
	rate int
	log  *slog.Logger

	mu      sync.Mutex
	players map[string]map[string]*audio.Player
}

func NewBank(dir string, sampleRate int, log *slog.Logger) *Bank {
	if log == nil {
		log = slog.Default()
	}
	return &Bank{
		dir:     dir,
		rate:    sampleRate,
		log:     log,
		players: make(map[string]map[string]*audio.Player),
	}
}

func (b *Bank) path(instrument string, note string) string {
	p := filepath.Join(b.dir, instrument, note+".wav")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func (b *Bank) decode(path string) (io.Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return wav.DecodeWithSampleRate(b.rate, bytes.NewReader(data))
}

// LoadInstrument decodes every note the instrument has. Notes without a file
// are skipped; an instrument with no files at all is an error.
func (b *Bank) LoadInstrument(ctx context.Context, instrument string) error {
	if b.Loaded(instrument) {
		return nil
	}

	players := make(map[string]*audio.Player)
	for _, note := range pitch.Names() {
		if err := ctx.Err(); err != nil {
			closeAll(players)
			return err
		}
		path := b.path(instrument, note)
		if path == "" {
			b.log.Debug("no sample", "instrument", instrument, "note", note)
			continue
		}
		stream, err := b.decode(path)
		if err != nil {
			closeAll(players)
			return loadFailed(instrument, err)
		}
		actx, err := sharedAudioContext(b.rate)
		if err != nil {
			closeAll(players)
			return loadFailed(instrument, err)
		}
		p, err := actx.NewPlayer(stream)
		if err != nil {
			closeAll(players)
			return loadFailed(instrument, err)
		}
		players[note] = p
	}
	if len(players) == 0 {
		return loadFailed(instrument, fmt.Errorf("no samples under %v", filepath.Join(b.dir, instrument)))
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.players[instrument]; ok {
		// someone else finished first
		closeAll(players)
		return nil
	}
	b.players[instrument] = players
	b.log.Info("loaded instrument", "instrument", instrument, "notes", len(players))
	return nil
}

func (b *Bank) Loaded(instrument string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.players[instrument]
	return ok
}

func (b *Bank) player(instrument string, note string) *audio.Player {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.players[instrument][note]
}

// Trigger restarts the note's sample. Missing samples are silent.
func (b *Bank) Trigger(instrument string, note string) {
	p := b.player(instrument, note)
	if p == nil {
		return
	}
	if err := p.SetPosition(time.Duration(0)); err != nil {
		b.log.Debug("could not rewind sample", "note", note, "err", err)
	}
	p.Play()
}

func (b *Bank) Release(instrument string, note string) {
	if p := b.player(instrument, note); p != nil {
		p.Pause()
	}
}

func (b *Bank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for name, players := range b.players {
		closeAll(players)
		delete(b.players, name)
	}
}

func closeAll(players map[string]*audio.Player) {
	for _, p := range players {
		p.Close()
	}
}
