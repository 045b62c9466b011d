package cmd

import (
	"fmt"

	"github.com/jsphweid/notewheel/scale"
	"github.com/jsphweid/notewheel/sequence"
	"github.com/spf13/cobra"
)

var (
	inspectSource sequenceSource
	inspectBase   string
)

func init() {
	inspectSource.addFlags(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectBase, "base", "http://localhost:8080/", "base url for the share link")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [compact]",
	Short: "Inspects a demo sequence",
	Long: `Parses a demo sequence and prints its config, each event as written
and as resolved, and a link that replays it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := inspectSource.load(args)
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

		c := seq.Config
		if c.Temperament != nil {
			fmt.Printf("temperament: %v\n", *c.Temperament)
		}
		st := sess.Scale()
		fmt.Printf("scale: %v %v\n", st.Root, st.Type)
		if c.Fifths != nil {
			fmt.Printf("fifths: %v\n", *c.Fifths)
		}
		if c.ChromaticColors != nil {
			fmt.Printf("chromatic colors: %v\n", *c.ChromaticColors)
		}

		sess.WithScale(func(e *scale.Engine) {
			for i, event := range seq.Events {
				var written []string
				for _, n := range event.Notes {
					written = append(written, n.String())
				}
				fmt.Printf("%3d  %-20v %-16v %v/%v\n", i+1, fmt.Sprint(written),
					fmt.Sprint(sequence.ResolveNotes(event.Notes, e)), event.Duration, event.Sustain)
			}
		})

		if compact, err := sequence.Format(seq); err == nil {
			fmt.Printf("compact: %v\n", compact)
		}
		if link, err := sequence.Link(inspectBase, seq); err == nil {
			fmt.Printf("link: %v\n", link)
		}
		return nil
	},
}
