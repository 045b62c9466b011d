package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jsphweid/notewheel/chord"
	"github.com/jsphweid/notewheel/midi"
	"github.com/spf13/cobra"
)

var analyzeMax int

func init() {
	analyzeCmd.Flags().IntVar(&analyzeMax, "max", 0, "stop after this many files (0 for all)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.mid|dir>...",
	Short: "Names the chords in midi files",
	Long: `Reads midi files (directories are searched) and prints the chords
formed each time the set of sounding notes changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := gatherMidiPaths(args, analyzeMax)
		if err != nil {
			return err
		}
		for _, path := range paths {
			analyze(path)
		}
		return nil
	},
}

func isMidiFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mid" || ext == ".midi"
}

func gatherMidiPaths(args []string, maxNum int) ([]string, error) {
	var paths []string
	for _, arg := range args {
		err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if maxNum > 0 && len(paths) >= maxNum {
				return fs.SkipAll
			}
			if !d.IsDir() && (path == arg || isMidiFile(path)) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func analyze(path string) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		fmt.Printf("%v: %v\n", path, err)
		return
	}
	fmt.Printf("%v\n", path)
	for _, snap := range midi.Snapshots(s) {
		var names []string
		matches := chord.Display(chord.Matches(snap.Notes))
		chord.RankSort(matches)
		for _, m := range matches {
			names = append(names, m.Name())
		}
		fmt.Printf("  %8.2fs  %-24v %v\n", snap.Offset.Seconds(), fmt.Sprint(snap.Notes), names)
	}
}
