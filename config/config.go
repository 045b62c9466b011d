package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/notewheel/constants"
	"gopkg.in/yaml.v3"
)

var ErrBadConfig = errors.New("bad config file")

func badConfig(path string, err error) error {
	return fault.Wrap(fmt.Errorf("%w: %w", ErrBadConfig, err),
		fmsg.WithDesc(fmt.Sprintf("config %v", path), "The config file "+path+" could not be read."),
		ftag.With(ftag.InvalidArgument),
	)
}

type Config struct {
	Addr       string `yaml:"addr"`
	SampleDir  string `yaml:"sample_dir"`
	SampleRate int    `yaml:"sample_rate"`
	Instrument string `yaml:"instrument"`
	Root       string `yaml:"root"`
	Scale      string `yaml:"scale"`

	AutoplayMs int `yaml:"autoplay_ms"`
	DebounceMs int `yaml:"debounce_ms"`

	Midi Midi `yaml:"midi"`
}

type Midi struct {
	Out     string `yaml:"out"`
	In      string `yaml:"in"`
	Channel uint8  `yaml:"channel"`
	Octave  int    `yaml:"octave"`
}

func Default() Config {
	return Config{
		Addr:       ":8080",
		SampleDir:  "./sounds",
		SampleRate: constants.DefaultSampleRate,
		Instrument: constants.DefaultInstrument,
		Root:       constants.DefaultRoot,
		Scale:      constants.DefaultScale,
		AutoplayMs: int(constants.DefaultAutoplayInterval.Milliseconds()),
		DebounceMs: int(constants.DefaultDebounce.Milliseconds()),
		Midi:       Midi{Octave: constants.DefaultOctave},
	}
}

// Load layers defaults, then the yaml file at path (if any), then environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, badConfig(path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, badConfig(path, err)
		}
	}
	if os.Getenv("NOTEWHEEL_SAMPLE_DIR") != "" {
		cfg.SampleDir = constants.GetSampleDir()
	}
	if os.Getenv("NOTEWHEEL_ADDR") != "" {
		cfg.Addr = constants.GetAddr()
	}
	return cfg, nil
}

func (c Config) AutoplayInterval() time.Duration {
	return time.Duration(c.AutoplayMs) * time.Millisecond
}

func (c Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}
