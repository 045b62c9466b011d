package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/notewheel/midi"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/jsphweid/notewheel/scale"
	"github.com/jsphweid/notewheel/sequence"
	"github.com/spf13/cobra"
)

var (
	exportSource sequenceSource
	exportBpm    float64
)

func init() {
	exportSource.addFlags(exportCmd)
	exportCmd.Flags().Float64Var(&exportBpm, "bpm", 120, "tempo written to the file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [compact] <out.mid>",
	Short: "Writes a demo sequence to a midi file",
	Long: `Resolves a demo sequence against its scale and writes it as a
standard midi file.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := args[len(args)-1]
		seq, err := exportSource.load(args[:len(args)-1])
		if err != nil {
			return err
		}
		sess, err := newSession()
		if err != nil {
			return err
		}
		if err := sess.Apply(cmd.Context(), seq.Config); err != nil {
			return err
		}

		var steps []model.Step
		sess.WithScale(func(e *scale.Engine) {
			steps = sequence.ResolveAll(seq, e)
		})
		for i := range steps {
			steps[i].Notes = playable(i, steps[i].Notes)
		}
		s, err := midi.Export(steps, exportBpm, cfg.Midi.Channel, cfg.Midi.Octave)
		if err != nil {
			return err
		}
		if err := s.WriteFile(out); err != nil {
			return err
		}
		fmt.Printf("wrote %d events to %v\n", len(steps), out)
		return nil
	},
}

// playable drops tokens that never named a note, the same ones playback skips.
func playable(index int, notes model.Notes) model.Notes {
	res := make(model.Notes, 0, len(notes))
	for _, n := range notes {
		if !pitch.IsValid(n) {
			slog.Warn("skipping note", "event", index+1, "note", n)
			continue
		}
		res = append(res, n)
	}
	return res
}
