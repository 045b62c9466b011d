package cmd

import (
	"fmt"

	"github.com/jsphweid/notewheel/chord"
	"github.com/jsphweid/notewheel/progression"
	"github.com/jsphweid/notewheel/scale"
	"github.com/jsphweid/notewheel/sequence"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Lists scales, chords, progressions and demos",
	Long:  `Lists every scale type, chord type, progression and built-in demo.`,
	Run: func(cmd *cobra.Command, args []string) {
		catalog()
	},
}

func catalog() {
	fmt.Println("scales:")
	for _, name := range scale.Types() {
		pattern, _ := scale.PatternFor(name)
		fmt.Printf("  %-18v %v\n", name, pattern)
	}

	fmt.Println("chords:")
	for _, t := range chord.Types() {
		fmt.Printf("  %-6q %-24v %v\n", t.Suffix, t.Name, t.Intervals)
	}

	fmt.Println("progressions:")
	for _, name := range progression.Names() {
		p, _ := progression.Lookup(name)
		fmt.Printf("  %-14v %v\n", name, p.Steps)
	}

	fmt.Println("demos:")
	for _, name := range sequence.DemoNames() {
		seq, _ := sequence.Demo(name)
		fmt.Printf("  %-12v %d events\n", name, len(seq.Events))
	}
}
