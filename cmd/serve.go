package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/gorilla/mux"
	"github.com/jsphweid/notewheel/model"
	"github.com/jsphweid/notewheel/player"
	"github.com/jsphweid/notewheel/progression"
	"github.com/jsphweid/notewheel/sample"
	"github.com/jsphweid/notewheel/sequence"
	"github.com/jsphweid/notewheel/session"
	"github.com/jsphweid/notewheel/sounding"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the wheel over http",
	Long: `Serves the session state and controls over http for a browser
visualization. Sounding notes go to the sample bank.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// Server exposes one session. The sequence player and autoplay never run
// together here: starting either stops the other.
type Server struct {
	sess     *session.Session
	sequence *player.Sequence
	autoplay *player.Autoplay
	owner    sounding.Owner
	interval time.Duration
	log      *slog.Logger
}

func NewServer(sess *session.Session, interval time.Duration, opts ...player.Option) *Server {
	return &Server{
		sess:     sess,
		sequence: player.NewSequence(sess, opts...),
		autoplay: player.NewAutoplay(sess, opts...),
		owner:    sounding.NewOwner("http"),
		interval: interval,
		log:      slog.Default().With("session", sess.Id()),
	}
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/state", s.HandleState).Methods("GET")
	router.HandleFunc("/scale", s.HandleSetScale).Methods("PUT")
	router.HandleFunc("/scale/degrees", s.HandleDegrees).Methods("GET")
	router.HandleFunc("/notes/{note}/on", s.HandleNoteOn).Methods("POST")
	router.HandleFunc("/notes/{note}/off", s.HandleNoteOff).Methods("POST")
	router.HandleFunc("/stop", s.HandleStop).Methods("POST")
	router.HandleFunc("/chords", s.HandleChords).Methods("GET")
	router.HandleFunc("/progression", s.HandleSetProgression).Methods("PUT")
	router.HandleFunc("/progression/next", s.HandleNextChord).Methods("POST")
	router.HandleFunc("/progression/previous", s.HandlePreviousChord).Methods("POST")
	router.HandleFunc("/progression/autoplay", s.HandleStartAutoplay).Methods("POST")
	router.HandleFunc("/progression/autoplay", s.HandleStopAutoplay).Methods("DELETE")
	router.HandleFunc("/demo", s.HandlePlayDemo).Methods("POST")
	router.HandleFunc("/demo", s.HandleStopDemo).Methods("DELETE")
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("could not write response", "err", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, progression.ErrIdle):
		return http.StatusConflict
	case errors.Is(err, player.ErrBadInterval):
		return http.StatusBadRequest
	}
	switch ftag.Get(err) {
	case ftag.InvalidArgument:
		return http.StatusBadRequest
	case ftag.NotFound:
		return http.StatusNotFound
	case ftag.Cancelled:
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	detail := fmsg.GetIssue(err)
	if detail == "" {
		detail = err.Error()
	}
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func decodeBody(r *http.Request, v any) error {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(reqBody) == 0 {
		return nil
	}
	return json.Unmarshal(reqBody, v)
}

func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.State())
}

func (s *Server) HandleSetScale(w http.ResponseWriter, r *http.Request) {
	var input model.ScaleRequestBody
	if err := decodeBody(r, &input); err != nil {
		http.Error(w, "Could not read request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.sess.SetScale(input.Root, input.Type); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.Scale())
}

func (s *Server) HandleDegrees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.DegreeChords())
}

func (s *Server) HandleNoteOn(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.NoteOn(s.owner, mux.Vars(r)["note"]); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SoundingResponse{Sounding: s.sess.Sounding()})
}

func (s *Server) HandleNoteOff(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.NoteOff(s.owner, mux.Vars(r)["note"]); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SoundingResponse{Sounding: s.sess.Sounding()})
}

func (s *Server) HandleStop(w http.ResponseWriter, r *http.Request) {
	s.sequence.Stop()
	s.autoplay.Stop()
	s.sess.StopAll()
	writeJSON(w, http.StatusOK, model.SoundingResponse{Sounding: s.sess.Sounding()})
}

func (s *Server) HandleChords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.ChordsResponse{
		Sounding: s.sess.Sounding(),
		Chords:   s.sess.DisplayChords(),
		Detected: s.sess.Detect(),
	})
}

func (s *Server) HandleSetProgression(w http.ResponseWriter, r *http.Request) {
	var input model.ProgressionRequestBody
	if err := decodeBody(r, &input); err != nil {
		http.Error(w, "Could not read request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.sess.SetProgression(input.Name); err != nil {
		s.writeError(w, err)
		return
	}
	if input.Name == "" {
		s.autoplay.Stop()
	}
	writeJSON(w, http.StatusOK, s.sess.CurrentChord())
}

func (s *Server) HandleNextChord(w http.ResponseWriter, r *http.Request) {
	c, err := s.sess.NextChord()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) HandlePreviousChord(w http.ResponseWriter, r *http.Request) {
	c, err := s.sess.PreviousChord()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) HandleStartAutoplay(w http.ResponseWriter, r *http.Request) {
	var input model.AutoplayRequestBody
	if err := decodeBody(r, &input); err != nil {
		http.Error(w, "Could not read request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	interval := s.interval
	if input.IntervalMs != 0 {
		interval = time.Duration(input.IntervalMs) * time.Millisecond
	}

	s.sequence.Stop()
	if err := s.autoplay.Start(interval); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AutoplayResponse{
		Running:    true,
		IntervalMs: int(interval.Milliseconds()),
		Chord:      s.sess.CurrentChord(),
	})
}

func (s *Server) HandleStopAutoplay(w http.ResponseWriter, r *http.Request) {
	s.autoplay.Stop()
	writeJSON(w, http.StatusOK, model.AutoplayResponse{Chord: s.sess.CurrentChord()})
}

// HandlePlayDemo takes the compact form in ?demo=, a built-in demo in
// ?name=, or the object form as the body. A bad demo changes nothing.
func (s *Server) HandlePlayDemo(w http.ResponseWriter, r *http.Request) {
	seq, ok, err := sequence.FromURL(r.URL.String())
	if !ok && err == nil {
		if name := r.URL.Query().Get("name"); name != "" {
			seq, err = sequence.Demo(name)
		} else {
			var reqBody []byte
			reqBody, err = io.ReadAll(r.Body)
			if err == nil {
				seq, err = sequence.ParseJSON(reqBody)
			}
		}
	}
	if err != nil {
		s.log.Info("ignoring malformed demo", "err", err)
		s.writeError(w, err)
		return
	}

	s.autoplay.Stop()
	if _, err := s.sequence.Play(r.Context(), seq); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.DemoResponse{Events: len(seq.Events), Config: !seq.Config.IsEmpty()})
}

func (s *Server) HandleStopDemo(w http.ResponseWriter, r *http.Request) {
	s.sequence.Stop()
	writeJSON(w, http.StatusOK, model.SoundingResponse{Sounding: s.sess.Sounding()})
}

func serve(ctx context.Context) error {
	bank := sample.NewBank(cfg.SampleDir, cfg.SampleRate, slog.Default())
	defer bank.Close()

	sess, err := newSession(
		session.WithVoice(bank),
		session.WithDisplay(model.Display{Temperament: cfg.Instrument}),
		session.WithOnChange(cfg.Debounce(), func(st model.State) {
			var names []string
			for _, c := range st.Chords {
				names = append(names, c.Name())
			}
			slog.Info("wheel", "sounding", st.Sounding, "chords", names)
		}),
	)
	if err != nil {
		return err
	}
	if err := bank.LoadInstrument(ctx, cfg.Instrument); err != nil {
		slog.Warn("starting without samples", "err", err)
	}

	server := NewServer(sess, cfg.AutoplayInterval())
	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}).Handler(server.Router())

	slog.Info("listening", "addr", cfg.Addr)
	return http.ListenAndServe(cfg.Addr, handler)
}
