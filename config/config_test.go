package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "C", cfg.Root)
	assert.Equal(t, "Major", cfg.Scale)
	assert.Equal(t, 2*time.Second, cfg.AutoplayInterval())
	assert.Equal(t, 4, cfg.Midi.Octave)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notewheel.yaml")
	data := []byte("root: A\nscale: Minor\nautoplay_ms: 500\nmidi:\n  out: IAC\n  channel: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "A", cfg.Root)
	assert.Equal(t, "Minor", cfg.Scale)
	assert.Equal(t, 500*time.Millisecond, cfg.AutoplayInterval())
	assert.Equal(t, "IAC", cfg.Midi.Out)
	assert.Equal(t, uint8(2), cfg.Midi.Channel)
	// untouched keys keep their defaults
	assert.Equal(t, "Piano", cfg.Instrument)
	assert.Equal(t, 4, cfg.Midi.Octave)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("NOTEWHEEL_SAMPLE_DIR", "/tmp/samples")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/samples", cfg.SampleDir)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, ErrBadConfig))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
}

func TestUnparsableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notewheel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: [A\n"), 0644))

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrBadConfig))
	assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
	assert.Contains(t, fmsg.GetIssue(err), path)
}
