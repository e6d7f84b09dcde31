// Package session runs games for clients: it applies human moves, lets the
// engine answer in one-player mode and keeps sessions by id.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"minimax_chess/internal/game"
	"minimax_chess/internal/notation"
	"minimax_chess/internal/search"
)

// MoveInfo describes a played ply.
type MoveInfo struct {
	Color      game.Color `json:"color"`
	Text       string     `json:"text"`
	SAN        string     `json:"san,omitempty"`
	Castle     bool       `json:"castle,omitempty"`
	Capture    bool       `json:"capture,omitempty"`
	Promotion  bool       `json:"promotion,omitempty"`
	Threatened bool       `json:"threatened,omitempty"`
}

// Turn reports what happened after a human action.
type Turn struct {
	Human   *MoveInfo   `json:"human,omitempty"`
	Engine  *MoveInfo   `json:"engine,omitempty"`
	Pending bool        `json:"promotionPending,omitempty"`
	Status  game.Status `json:"status"`
}

// Hint is a legal destination for a selected piece.
type Hint struct {
	Move       string `json:"move"`
	To         string `json:"to"`
	Castle     bool   `json:"castle,omitempty"`
	Capture    bool   `json:"capture,omitempty"`
	Threatened bool   `json:"threatened,omitempty"`
}

// View is a read-only snapshot of a session.
type View struct {
	ID            string      `json:"id"`
	Settings      Settings    `json:"settings"`
	FEN           string      `json:"fen"`
	Board         []string    `json:"board"`
	Turn          game.Color  `json:"turn"`
	Status        game.Status `json:"status"`
	GameOver      bool        `json:"gameOver"`
	History       []string    `json:"history"`
	UndoAvailable bool        `json:"undoAvailable"`
	Pending       string      `json:"promotionPending,omitempty"`
	LastEngine    *MoveInfo   `json:"lastEngineMove,omitempty"`
}

// Session is one game with its settings. It is safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	id         string
	settings   Settings
	game       *game.Game
	lastEngine *MoveInfo
	broken     bool
	log        *log.Logger
}

// New starts a session from the standard position, or from fen when it is
// not empty. In one-player mode the engine moves first when it is its turn.
func New(id string, settings Settings, fen string, logger *log.Logger) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{id: id, settings: settings, log: logger}
	if err := s.start(fen); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) start(fen string) error {
	var (
		g   *game.Game
		err error
	)
	if fen == "" {
		g, err = game.NewGame(s.settings.HistorySize)
	} else {
		g, err = notation.ParseFEN(fen, s.settings.HistorySize)
	}
	if err != nil {
		return err
	}
	s.game = g
	s.lastEngine = nil
	if s.engineToMove() {
		if _, err := s.engineReply(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Broken reports whether the session hit an internal failure and must be
// dropped.
func (s *Session) Broken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.broken
}

// Reset starts the game over with the same settings.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.start(""); err != nil {
		return s.fail(err)
	}
	s.broken = false
	return nil
}

// Move plays a human move given as text (e2e4, e7e8q, O-O). In one-player
// mode the engine answers before Move returns, unless a promotion piece is
// still to be chosen.
func (s *Session) Move(text string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return Turn{}, err
	}
	m, err := notation.ParseMove(text, s.game.Turn())
	if err != nil {
		return Turn{}, err
	}
	info := s.describe(m)
	if err := s.game.ApplyMove(&m, false); err != nil {
		return Turn{}, s.fail(err)
	}
	if _, pending := s.game.PendingPromotion(); pending {
		return Turn{Pending: true, Status: s.game.Status()}, nil
	}
	return s.afterHuman(info, m)
}

// Promote completes a pending promotion with the named piece.
func (s *Session) Promote(piece string) (Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return Turn{}, ErrBroken
	}
	if _, ok := s.game.PendingPromotion(); !ok {
		return Turn{}, fmt.Errorf("%w: no promotion pending", game.ErrInvalidArgument)
	}
	pt, ok := game.ParsePromotionPiece(piece)
	if !ok {
		return Turn{}, fmt.Errorf("%w: cannot promote to %q", game.ErrInvalidArgument, piece)
	}
	info := &MoveInfo{Color: s.game.Turn()}
	m, err := s.game.PromotePending(pt)
	if err != nil {
		return Turn{}, s.fail(err)
	}
	return s.afterHuman(info, m)
}

func (s *Session) afterHuman(info *MoveInfo, m game.Move) (Turn, error) {
	annotate(info, m)
	turn := Turn{Human: info}
	if s.engineToMove() {
		reply, err := s.engineReply()
		if err != nil {
			return Turn{}, err
		}
		turn.Engine = reply
	}
	turn.Status = s.game.Status()
	return turn, nil
}

func (s *Session) ready() error {
	if s.broken {
		return ErrBroken
	}
	if s.game.Status().Terminal() {
		return fmt.Errorf("%w: %s", ErrGameOver, s.game.Status())
	}
	if s.settings.Mode == OnePlayer && s.game.Turn() != s.settings.HumanColor {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) engineToMove() bool {
	return s.settings.Mode == OnePlayer &&
		s.game.Turn() != s.settings.HumanColor &&
		!s.game.Status().Terminal()
}

func (s *Session) engineReply() (*MoveInfo, error) {
	res, err := search.Search(s.game, s.settings.Difficulty)
	if err != nil {
		return nil, s.fail(err)
	}
	m := res.Move
	info := s.describe(m)
	if err := s.game.ApplyMove(&m, true); err != nil {
		return nil, s.fail(err)
	}
	annotate(info, m)
	s.lastEngine = info
	s.log.Printf("session %s: engine %s (score %d, %d nodes)", s.id, info.Text, res.Score, res.Nodes)
	return info, nil
}

// describe fills the parts of a MoveInfo known before m is played.
func (s *Session) describe(m game.Move) *MoveInfo {
	info := &MoveInfo{Color: s.game.Turn(), Text: notation.MoveString(m)}
	if san, err := notation.Algebraic(s.game, m); err == nil {
		info.SAN = san
	}
	return info
}

func annotate(info *MoveInfo, m game.Move) {
	info.Text = notation.MoveString(m)
	info.Castle = m.Castle
	info.Capture = m.Captured
	info.Promotion = m.Promotion
	info.Threatened = m.Threatened
}

// fail marks the session broken on internal failures and passes err on.
func (s *Session) fail(err error) error {
	if errors.Is(err, game.ErrMemoryFailure) {
		s.broken = true
		s.log.Printf("session %s: %v", s.id, err)
	}
	return err
}

// Undo takes back moves until it is the human's turn again: normally the
// engine's reply and the human move before it.
func (s *Session) Undo() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.broken {
		return nil, ErrBroken
	}
	if s.settings.Mode != OnePlayer {
		return nil, fmt.Errorf("%w: two-player game", ErrUndoUnavailable)
	}
	if !s.undoAvailable() {
		return nil, ErrUndoUnavailable
	}
	var undone []string
	for {
		m, err := s.game.UndoMove()
		if err != nil {
			return undone, s.fail(err)
		}
		undone = append(undone, notation.MoveString(m))
		if s.game.Turn() == s.settings.HumanColor {
			break
		}
	}
	s.lastEngine = nil
	return undone, nil
}

// undoAvailable requires enough history to get back to a human turn.
func (s *Session) undoAvailable() bool {
	human := s.settings.HumanColor
	if s.settings.Mode != OnePlayer || !s.game.IsUndoAvailable(human) {
		return false
	}
	history := s.game.History()
	need := 2
	if history[len(history)-1].SrcPiece.Color() == human {
		need = 1
	}
	return len(history) >= need
}

// Hints lists the legal moves of the piece on square.
func (s *Session) Hints(square string) ([]Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.settings.HintsEnabled() {
		return nil, ErrHintsUnavailable
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	row, col, err := notation.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	moves, err := s.game.GenerateMoves(row, col)
	if err != nil {
		return nil, s.fail(err)
	}
	hints := make([]Hint, 0, len(moves))
	for _, m := range moves {
		hints = append(hints, Hint{
			Move:       notation.MoveString(m),
			To:         notation.Destination(s.game, m),
			Castle:     m.Castle,
			Capture:    m.Captured,
			Threatened: m.Threatened,
		})
	}
	return hints, nil
}

// Targets returns the destinations of the piece on square for highlighting.
// Unlike Hints it is available in every mode.
func (s *Session) Targets(square string) (game.Bitboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, col, err := notation.ParseSquare(square)
	if err != nil {
		return 0, err
	}
	return s.game.Targets(row, col)
}

// Snapshot returns a copy of the current position for rendering.
func (s *Session) Snapshot() *game.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Copy()
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.game
	st := g.State()
	v := View{
		ID:            s.id,
		Settings:      s.settings,
		FEN:           notation.FEN(g),
		Turn:          g.Turn(),
		Status:        g.Status(),
		GameOver:      g.Status().Terminal(),
		UndoAvailable: s.undoAvailable(),
		LastEngine:    s.lastEngine,
	}
	for row := len(st.Rows) - 1; row >= 0; row-- {
		v.Board = append(v.Board, st.Rows[row])
	}
	for _, m := range st.History {
		v.History = append(v.History, notation.MoveString(m))
	}
	if st.Pending != nil {
		v.Pending = notation.SquareName(st.Pending.DstRow, st.Pending.DstCol)
	}
	return v
}
