package sample

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutSamplesFails(t *testing.T) {
	b := NewBank(t.TempDir(), 44100, nil)
	err := b.LoadInstrument(context.Background(), "Piano")
	assert.True(t, errors.Is(err, ErrSampleLoad))
	assert.False(t, b.Loaded("Piano"))
}

func TestLoadStopsWhenCancelled(t *testing.T) {
	b := NewBank(t.TempDir(), 44100, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.LoadInstrument(ctx, "Piano")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestUndecodableSampleFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Piano"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Piano", "C.wav"), []byte("not a wav"), 0o644))

	b := NewBank(dir, 44100, nil)
	err := b.LoadInstrument(context.Background(), "Piano")
	assert.True(t, errors.Is(err, ErrSampleLoad))
}

func TestMissingNotesAreSilent(t *testing.T) {
	b := NewBank(t.TempDir(), 44100, nil)
	assert.NotPanics(t, func() {
		b.Trigger("Piano", "C")
		b.Release("Piano", "C")
		b.Close()
	})
}
