package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/jsphweid/notewheel/chord"
	"github.com/jsphweid/notewheel/midi"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/player"
	"github.com/jsphweid/notewheel/sample"
	"github.com/jsphweid/notewheel/sequence"
	"github.com/jsphweid/notewheel/session"
	"github.com/spf13/cobra"
)

// where a command reads its sequence from
type sequenceSource struct {
	url  string
	file string
	name string
}

func (src *sequenceSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&src.url, "url", "", "link carrying a demo parameter")
	cmd.Flags().StringVar(&src.file, "file", "", "json file with the object form")
	cmd.Flags().StringVar(&src.name, "demo", "", "built-in demo name")
}

func (src *sequenceSource) load(args []string) (*model.Sequence, error) {
	switch {
	case src.url != "":
		seq, ok, err := sequence.FromURL(src.url)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%v has no %v parameter", src.url, sequence.DemoParam)
		}
		return seq, nil
	case src.file != "":
		data, err := os.ReadFile(src.file)
		if err != nil {
			return nil, err
		}
		return sequence.ParseJSON(data)
	case src.name != "":
		return sequence.Demo(src.name)
	case len(args) == 1:
		return sequence.Parse(args[0])
	}
	return nil, errors.New("need a compact sequence, --url, --file or --demo")
}

var (
	playSource sequenceSource
	playMidi   string
)

func init() {
	playSource.addFlags(playCmd)
	playCmd.Flags().StringVar(&playMidi, "midi-out", "", "send to this midi output instead of samples")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [compact]",
	Short: "Plays a demo sequence",
	Long: `Plays a demo sequence through the sample bank or a midi output,
printing each event's notes and chords as it sounds.`,
	Example: `  notewheel play "Piano,A,Minor|1+3+5;4+6+1;5+7+2|1000,800"
  notewheel play --demo blues --midi-out "IAC Driver Bus 1"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := playSource.load(args)
		if err != nil {
			return err
		}
		voice, closeVoice, err := openVoice(playMidi)
		if err != nil {
			return err
		}
		defer closeVoice()

		sess, err := newSession(
			session.WithVoice(voice),
			session.WithDisplay(model.Display{Temperament: cfg.Instrument}),
		)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return play(ctx, sess, seq)
	},
}

func openVoice(midiOut string) (session.Voice, func(), error) {
	if midiOut != "" {
		out, err := midi.OpenOut(midiOut, cfg.Midi.Channel, cfg.Midi.Octave, slog.Default())
		if err != nil {
			return nil, nil, err
		}
		return out, midi.CloseDriver, nil
	}
	bank := sample.NewBank(cfg.SampleDir, cfg.SampleRate, slog.Default())
	return bank, bank.Close, nil
}

func play(ctx context.Context, sess *session.Session, seq *model.Sequence) error {
	p := player.NewSequence(sess, player.WithStepHook(func(index int, notes model.Notes) {
		var names []string
		for _, m := range chord.Display(chord.Matches(notes)) {
			names = append(names, m.Name())
		}
		fmt.Printf("%3d  %-16v %v\n", index+1, fmt.Sprint(notes), names)
	}))
	h, err := p.Play(ctx, seq)
	if err != nil {
		return err
	}
	if err := h.Wait(ctx); err != nil {
		p.Stop()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
