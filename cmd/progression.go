package cmd

import (
	"fmt"

	"github.com/jsphweid/notewheel/progression"
	"github.com/spf13/cobra"
)

var progressionRoot, progressionScale string

func init() {
	progressionCmd.Flags().StringVar(&progressionRoot, "root", "", "scale root (default from config)")
	progressionCmd.Flags().StringVar(&progressionScale, "scale", "", "scale type (default from config)")
	rootCmd.AddCommand(progressionCmd)
}

var progressionCmd = &cobra.Command{
	Use:   "progression <name>",
	Short: "Walks a progression in a scale",
	Long: `Walks a named progression in a scale and prints each chord.
With no name, lists the progressions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range progression.Names() {
				fmt.Println(name)
			}
			return nil
		}

		sess, err := newSession()
		if err != nil {
			return err
		}
		if progressionRoot != "" || progressionScale != "" {
			st := sess.Scale()
			root, scaleType := st.Root, st.Type
			if progressionRoot != "" {
				root = progressionRoot
			}
			if progressionScale != "" {
				scaleType = progressionScale
			}
			if err := sess.SetScale(root, scaleType); err != nil {
				return err
			}
		}
		if err := sess.SetProgression(args[0]); err != nil {
			return err
		}

		st := sess.Scale()
		fmt.Printf("%v in %v %v\n", args[0], st.Root, st.Type)
		first := sess.CurrentChord()
		for c := first; ; {
			notes, err := sess.CurrentChordNotes()
			if err != nil {
				return err
			}
			fmt.Printf("%-12v %-5v %v\n", c.Label, c.Name(), notes)
			if c, err = sess.NextChord(); err != nil {
				return err
			}
			if c.Step == first.Step {
				return nil
			}
		}
	},
}
