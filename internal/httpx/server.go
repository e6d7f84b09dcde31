package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"minimax_chess/internal/game"
	"minimax_chess/internal/notation"
	"minimax_chess/internal/render"
	"minimax_chess/internal/session"
)

// Server wires the HTTP layer to the game sessions.
type Server struct {
	store *session.Store
	tmpl  *template.Template
	log   *log.Logger
	srvMu sync.Mutex
	srv   *http.Server
}

const (
	maxJSONBodyBytes int64 = 1 << 20
	htmlCSP                = "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'; frame-ancestors 'none'; base-uri 'none'; form-action 'self'"
	apiCSP                 = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'"
)

// NewServer builds a Server over store and parses the index template.
func NewServer(store *session.Store, logger *log.Logger) (*Server, error) {
	t, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, tmpl: t, log: logger}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Difficulty 4 searches on crowded boards take a while.
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	s.srvMu.Lock()
	s.srv = srv
	s.srvMu.Unlock()
	defer func() {
		s.srvMu.Lock()
		s.srv = nil
		s.srvMu.Unlock()
	}()

	s.log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close attempts a graceful shutdown of the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	s.srvMu.Lock()
	srv := s.srv
	s.srvMu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// routes configures the ServeMux with the UI page and the JSON APIs.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.handleIndex)

	mux.HandleFunc("/api/games", s.withJSON(s.handleCreate))
	mux.HandleFunc("/api/games/{id}", s.withJSON(s.handleGame))
	mux.HandleFunc("/api/games/{id}/move", s.withJSON(s.handleMove))
	mux.HandleFunc("/api/games/{id}/promotion", s.withJSON(s.handlePromotion))
	mux.HandleFunc("/api/games/{id}/undo", s.withJSON(s.handleUndo))
	mux.HandleFunc("/api/games/{id}/reset", s.withJSON(s.handleReset))
	mux.HandleFunc("/api/games/{id}/moves", s.withJSON(s.handleHints))
	mux.HandleFunc("/api/games/{id}/fen", s.withJSON(s.handleFEN))
	mux.HandleFunc("/api/games/{id}/board.svg", s.handleBoardSVG)
	mux.HandleFunc("/api/games/{id}/board.txt", s.handleBoardText)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// ---- UI ----

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	applyHTMLSecurityHeaders(w.Header())
	data := map[string]any{
		"Defaults": mustJSON(s.store.Defaults()),
	}
	if id := r.URL.Query().Get("id"); id != "" {
		if sess, err := s.store.Get(id); err == nil {
			view := sess.View()
			data["View"] = view
			data["Board"] = render.Text(sess.Snapshot())
		}
	}
	if err := s.tmpl.ExecuteTemplate(w, "index", data); err != nil {
		s.log.Printf("template exec: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
}

// ---- JSON helpers ----

func (s *Server) withJSON(h func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applyAPISecurityHeaders(w.Header())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		return true
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func mustJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return template.JS(b)
}

func applyHTMLSecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", htmlCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func applyAPISecurityHeaders(h http.Header) {
	h.Set("Content-Security-Policy", apiCSP)
	h.Set("Cross-Origin-Opener-Policy", "same-origin")
	h.Set("Cross-Origin-Embedder-Policy", "require-corp")
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// session looks up the {id} path value, writing a 404 when it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return sess, true
}

// fail maps err to a status code. A session broken by an internal failure
// is dropped from the store.
func (s *Server) fail(w http.ResponseWriter, sess *session.Session, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && sess != nil && sess.Broken() {
		if delErr := s.store.Delete(sess.ID()); delErr == nil {
			s.log.Printf("session %s dropped: %v", sess.ID(), err)
		}
	}
	writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrMemoryFailure), errors.Is(err, session.ErrBroken):
		return http.StatusInternalServerError
	case errors.Is(err, session.ErrGameOver),
		errors.Is(err, session.ErrNotYourTurn),
		errors.Is(err, session.ErrUndoUnavailable),
		errors.Is(err, game.ErrPromotionPending):
		return http.StatusConflict
	case errors.Is(err, session.ErrHintsUnavailable):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// ---- API: games ----

type createBody struct {
	session.Settings
	FEN string `json:"fen"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	body := createBody{Settings: s.store.Defaults()}
	if !decodeBody(w, r, &body) {
		return
	}
	sess, err := s.store.Create(body.Settings, strings.TrimSpace(body.FEN))
	if err != nil {
		s.fail(w, nil, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]any{"game": sess.View()})
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, http.MethodDelete) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if r.Method == http.MethodDelete {
		if err := s.store.Delete(sess.ID()); err != nil {
			s.fail(w, nil, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, map[string]any{"game": sess.View()})
}

// ---- API: play ----

type moveBody struct {
	Move string `json:"move"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body moveBody
	if !decodeBody(w, r, &body) {
		return
	}
	turn, err := sess.Move(body.Move)
	if err != nil {
		s.fail(w, sess, err)
		return
	}
	writeJSON(w, map[string]any{"turn": turn, "game": sess.View()})
}

type promotionBody struct {
	Piece string `json:"piece"`
}

func (s *Server) handlePromotion(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var body promotionBody
	if !decodeBody(w, r, &body) {
		return
	}
	turn, err := sess.Promote(body.Piece)
	if err != nil {
		s.fail(w, sess, err)
		return
	}
	writeJSON(w, map[string]any{"turn": turn, "game": sess.View()})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	undone, err := sess.Undo()
	if err != nil {
		s.fail(w, sess, err)
		return
	}
	writeJSON(w, map[string]any{"undone": undone, "game": sess.View()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.Reset(); err != nil {
		s.fail(w, sess, err)
		return
	}
	writeJSON(w, map[string]any{"game": sess.View()})
}

func (s *Server) handleHints(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	hints, err := sess.Hints(r.URL.Query().Get("square"))
	if err != nil {
		s.fail(w, sess, err)
		return
	}
	writeJSON(w, map[string]any{"moves": hints})
}

func (s *Server) handleFEN(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, map[string]string{"fen": notation.FEN(sess.Snapshot())})
}

// ---- boards ----

// handleBoardSVG draws the board, highlighting the destinations of the piece
// on ?square= when given.
func (s *Server) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	applyAPISecurityHeaders(w.Header())
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var marks game.Bitboard
	if square := r.URL.Query().Get("square"); square != "" {
		bb, err := sess.Targets(square)
		if err != nil {
			s.fail(w, sess, err)
			return
		}
		marks = bb
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	render.SVG(w, sess.Snapshot(), marks)
}

func (s *Server) handleBoardText(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, render.Text(sess.Snapshot()))
}
