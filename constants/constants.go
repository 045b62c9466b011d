package constants

import (
	"os"
	"time"
)

func GetSampleDir() string {
	path := os.Getenv("NOTEWHEEL_SAMPLE_DIR")
	if path != "" {
		return path
	}
	return "./sounds"
}

func GetAddr() string {
	addr := os.Getenv("NOTEWHEEL_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetConfigPath returns "" when no config file was asked for.
func GetConfigPath() string {
	return os.Getenv("NOTEWHEEL_CONFIG")
}

const DefaultDuration = 1500 * time.Millisecond

// sustain as a percentage of duration when a sequence gives none
const SustainPercent = 80

const DefaultAutoplayInterval = 2000 * time.Millisecond

const DefaultDebounce = 50 * time.Millisecond

const (
	DefaultInstrument = "Piano"
	DefaultRoot       = "C"
	DefaultScale      = "Major"
	DefaultSampleRate = 44100
	DefaultOctave     = 4
)
