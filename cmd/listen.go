package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/jsphweid/notewheel/midi"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/session"
	"github.com/jsphweid/notewheel/sounding"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen [port]",
	Short: "Names chords played on a midi keyboard",
	Long: `Listens on a midi input (by name or number, default the config's
midi.in or port 0) and prints the chords as the held notes change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer midi.CloseDriver()

		port := cfg.Midi.In
		if len(args) == 1 {
			port = args[0]
		}
		in, err := openIn(port)
		if err != nil {
			return err
		}

		sess, err := newSession(session.WithOnChange(cfg.Debounce(), func(st model.State) {
			var names []string
			for _, c := range st.Chords {
				names = append(names, c.Name())
			}
			fmt.Printf("%-24v %v\n", fmt.Sprint(st.Sounding), names)
		}))
		if err != nil {
			return err
		}

		keyboard := sounding.NewOwner("midi-in")
		// several keys share a pitch class; only the last one up releases it
		held := make(map[string]int)
		stop, err := midi.Listen(in, func(on bool, note string) {
			if on {
				held[note]++
				if held[note] == 1 {
					sess.NoteOn(keyboard, note)
				}
				return
			}
			if held[note] == 0 {
				return
			}
			held[note]--
			if held[note] == 0 {
				sess.NoteOff(keyboard, note)
			}
		})
		if err != nil {
			return err
		}
		defer stop()

		fmt.Printf("listening on %v\n", in)
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()
		<-ctx.Done()
		return nil
	},
}

func openIn(port string) (drivers.In, error) {
	if port == "" {
		return gomidi.InPort(0)
	}
	if n, err := strconv.Atoi(port); err == nil {
		return gomidi.InPort(n)
	}
	return midi.OpenIn(port)
}
