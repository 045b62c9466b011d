package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/notewheel/scale"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scaleCmd)
}

var scaleCmd = &cobra.Command{
	Use:   "scale <root> <type>",
	Short: "Shows a scale and the triad on each degree",
	Long:  `Shows a scale, its relative and parent keys, and the triad on each degree.`,
	Example: `  notewheel scale A "Minor Pentatonic"
  notewheel scale D Dorian`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := scale.NewEngine(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		st := e.State()
		fmt.Printf("%v %v: %v\n", st.Root, st.Type, st.Notes)
		if st.RelativeKey != "" {
			fmt.Printf("relative key: %v\n", st.RelativeKey)
		}
		if st.ParentMajor != nil {
			fmt.Printf("parent major: %v\n", *st.ParentMajor)
		}
		for _, d := range e.DegreeChords() {
			fmt.Printf("%d: %v%v\n", d.Degree, d.Note, d.Quality)
		}
		return nil
	},
}
