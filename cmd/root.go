package cmd

import (
	"log/slog"
	"os"

	"github.com/jsphweid/notewheel/config"
	"github.com/jsphweid/notewheel/constants"
	"github.com/jsphweid/notewheel/session"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "notewheel",
	Short: "Circle of notes, scales, chords and progressions",
	Long: `notewheel keeps the music theory state behind a note wheel: the
current scale, the notes that are sounding, the chords they form and the
progression being walked through.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		path := configPath
		if path == "" {
			path = constants.GetConfigPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "yaml config file (default $NOTEWHEEL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// newSession builds a session from the loaded config.
func newSession(opts ...session.Option) (*session.Session, error) {
	root := cfg.Root
	if root == "" {
		root = constants.DefaultRoot
	}
	scaleType := cfg.Scale
	if scaleType == "" {
		scaleType = constants.DefaultScale
	}
	return session.New(root, scaleType, opts...)
}
