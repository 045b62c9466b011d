package midi

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func reread(t *testing.T, s *smf.SMF) *smf.SMF {
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	read, err := smf.ReadFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return read
}

func TestKey(t *testing.T) {
	key, err := Key("C", 4)
	require.NoError(t, err)
	assert.Equal(t, uint8(60), key)

	key, err = Key("A", 4)
	require.NoError(t, err)
	assert.Equal(t, uint8(69), key)

	key, err = Key("B", 3)
	require.NoError(t, err)
	assert.Equal(t, uint8(59), key)

	_, err = Key("H", 4)
	assert.True(t, errors.Is(err, pitch.ErrInvalidNote))
}

func TestNoteName(t *testing.T) {
	assert.Equal(t, "C", NoteName(60))
	assert.Equal(t, "A", NoteName(69))
	assert.Equal(t, "G#", NoteName(20))
}

func TestVoicingClimbs(t *testing.T) {
	keys, err := Voicing([]string{"F", "A", "C"}, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint8{65, 69, 72}, keys)

	keys, err = Voicing([]string{"C", "C"}, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint8{60, 72}, keys)
}

func TestExportThenSnapshots(t *testing.T) {
	steps := []model.Step{
		{Notes: model.Notes{"C", "E", "G"}, Duration: time.Second, Sustain: 800 * time.Millisecond},
		{Notes: model.Notes{"A", "C", "F"}, Duration: time.Second, Sustain: 2 * time.Second},
	}
	s, err := Export(steps, 120, 0, 4)
	require.NoError(t, err)

	snaps := Snapshots(reread(t, s))
	require.Len(t, snaps, 2)
	assert.Equal(t, model.Notes{"C", "E", "G"}, snaps[0].Notes)
	assert.Equal(t, time.Duration(0), snaps[0].Offset)
	assert.Equal(t, model.Notes{"A", "C", "F"}, snaps[1].Notes)
	assert.Equal(t, time.Second, snaps[1].Offset)
}

func TestSnapshotsCountRepeatedKeys(t *testing.T) {
	var a, b smf.Track
	a.Add(0, gomidi.NoteOn(0, 60, 100))
	a.Add(960, gomidi.NoteOff(0, 60))
	a.Close(0)
	b.Add(0, gomidi.NoteOn(1, 60, 100))
	b.Add(0, gomidi.NoteOn(1, 64, 100))
	b.Add(1920, gomidi.NoteOff(1, 60))
	b.Add(0, gomidi.NoteOff(1, 64))
	b.Close(0)

	s := smf.New()
	s.TimeFormat = Resolution
	require.NoError(t, s.Add(a))
	require.NoError(t, s.Add(b))

	snaps := Snapshots(reread(t, s))
	require.Len(t, snaps, 1)
	assert.Equal(t, model.Notes{"C", "E"}, snaps[0].Notes)
}

func TestReadMidiFile(t *testing.T) {
	s, err := Export([]model.Step{{Notes: model.Notes{"D", "F#", "A"}, Duration: time.Second, Sustain: time.Second}}, 120, 0, 4)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "d.mid")
	require.NoError(t, s.WriteFile(path))

	read, err := ReadMidiFile(path)
	require.NoError(t, err)
	snaps := Snapshots(read)
	require.Len(t, snaps, 1)
	assert.Equal(t, model.Notes{"A", "D", "F#"}, snaps[0].Notes)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadMidiRejectsGarbage(t *testing.T) {
	for name, data := range map[string][]byte{
		"text":      []byte("not a midi file at all"),
		"truncated": []byte("MThd\x00\x00\x00\x06\x00"),
		"empty":     {},
	} {
		t.Run(name, func(t *testing.T) {
			s, err := ReadMidi(name, bytes.NewReader(data))
			assert.Nil(t, s)
			assert.True(t, errors.Is(err, ErrUnreadableMidi))
			assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
		})
	}
}

func TestExportRejectsBadTempo(t *testing.T) {
	_, err := Export(nil, 0, 0, 4)
	assert.Error(t, err)
}

func TestOutVoice(t *testing.T) {
	var sent []gomidi.Message
	o := NewOut(func(m gomidi.Message) error {
		sent = append(sent, m)
		return nil
	}, 2, 4, nil)

	require.NoError(t, o.LoadInstrument(context.Background(), "Organ"))
	o.Trigger("Organ", "E")
	o.Release("Organ", "E")
	o.Release("Organ", "E")

	require.Len(t, sent, 3)
	var ch, prog, key, vel uint8
	assert.True(t, sent[0].GetProgramChange(&ch, &prog))
	assert.Equal(t, uint8(2), ch)
	assert.Equal(t, Program("Organ"), prog)
	assert.True(t, sent[1].GetNoteStart(&ch, &key, &vel))
	assert.Equal(t, uint8(64), key)
	assert.True(t, sent[2].GetNoteEnd(&ch, &key))
	assert.Equal(t, uint8(64), key)
}
