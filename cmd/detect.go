package cmd

import (
	"fmt"

	"github.com/jsphweid/notewheel/chord"
	"github.com/jsphweid/notewheel/pitch"
	"github.com/spf13/cobra"
)

var showAll bool

func init() {
	detectCmd.Flags().BoolVar(&showAll, "all", false, "also list fifths hidden behind a richer chord")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect <note>...",
	Short: "Names the chords inside a set of notes",
	Long:  `Names every catalog chord whose notes are all inside the given notes.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, n := range args {
			if _, err := pitch.NameToIndex(n); err != nil {
				return err
			}
		}
		matches := chord.Matches(args)
		if !showAll {
			matches = chord.Display(matches)
		}
		chord.RankSort(matches)

		fmt.Printf("notes: %v\n", pitch.Sort(args))
		if len(matches) == 0 {
			fmt.Println("no chords")
		}
		for _, m := range matches {
			fmt.Printf("%-6v %v\n", m.Name(), m.Notes)
		}
		return nil
	},
}
