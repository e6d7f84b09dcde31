package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestUndoRestoresEveryLegalMove(t *testing.T) {
	positions := []struct {
		name   string
		turn   Color
		ranks  []string
		rights CastlingRights
	}{
		{
			name: "opening",
			turn: White,
			ranks: []string{
				"RNBQKBNR",
				"MMMMMMMM",
				"________",
				"________",
				"________",
				"________",
				"mmmmmmmm",
				"rnbqkbnr",
			},
			rights: CastlingAll,
		},
		{
			name: "promotions and castling",
			turn: White,
			ranks: []string{
				"RNBQ_K_R",
				"MM_mBMMM",
				"__M_____",
				"________",
				"__b_____",
				"________",
				"mmm_nNmm",
				"rnbqk__r",
			},
			rights: CastlingWhiteKingside | CastlingWhiteQueenside,
		},
		{
			name: "black to move with captures",
			turn: Black,
			ranks: []string{
				"R___K__R",
				"M_MMQMB_",
				"BN__MNM_",
				"___mn___",
				"_M__m___",
				"__n__q_M",
				"mmmbbmmm",
				"r___k__r",
			},
			rights: CastlingAll,
		},
	}
	for _, pos := range positions {
		pos := pos
		t.Run(pos.name, func(t *testing.T) {
			g := boardFromRanks(t, pos.turn, pos.rights, pos.ranks...)
			moves, err := g.LegalMoves()
			if err != nil {
				t.Fatalf("legal moves: %v", err)
			}
			if len(moves) == 0 {
				t.Fatalf("expected legal moves")
			}
			before := snap(g)
			for _, m := range moves {
				played := m
				if err := g.ApplyMove(&played, true); err != nil {
					t.Fatalf("apply %s: %v", m, err)
				}
				undone, err := g.UndoMove()
				if err != nil {
					t.Fatalf("undo %s: %v", m, err)
				}
				if !undone.Same(played) {
					t.Fatalf("undo returned %s, want %s", undone, played)
				}
				if snap(g) != before {
					t.Fatalf("undo of %s did not restore the position", m)
				}
			}
		})
	}
}

func TestHistoryEvictsOldestPly(t *testing.T) {
	g, err := NewGame(2)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	play(t, g, "e2e4", "e7e5", "g1f3")
	if g.HistoryLen() != 2 {
		t.Fatalf("history length = %d, want 2", g.HistoryLen())
	}
	if got := g.History()[0].String(); got != "e7e5" {
		t.Fatalf("oldest kept ply = %s, want e7e5", got)
	}
	for i := 0; i < 2; i++ {
		if _, err := g.UndoMove(); err != nil {
			t.Fatalf("undo %d: %v", i, err)
		}
	}
	_, err = g.UndoMove()
	if !errors.Is(err, ErrEmptyHistory) || !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	if g.Turn() != Black {
		t.Fatalf("undo should leave black to move after e2e4")
	}
}

func TestNewGameRejectsEmptyHistory(t *testing.T) {
	if _, err := NewGame(0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestIsUndoAvailable(t *testing.T) {
	g, err := NewGame(DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.IsUndoAvailable(White) || g.IsUndoAvailable(Black) {
		t.Fatalf("undo should not be available without history")
	}
	play(t, g, "e2e4")
	if !g.IsUndoAvailable(White) {
		t.Fatalf("white should be able to undo its first move")
	}
	if g.IsUndoAvailable(Black) {
		t.Fatalf("black cannot undo the engine's opening move")
	}
	play(t, g, "e7e5")
	if !g.IsUndoAvailable(Black) {
		t.Fatalf("black should be able to undo after its first move")
	}
}

func TestCopyDropsHistory(t *testing.T) {
	g, err := NewGame(DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	play(t, g, "e2e4")
	cp := g.Copy()
	if !cp.IsSearchCopy() || cp.HistoryLen() != 0 {
		t.Fatalf("copy should carry no history")
	}
	m := moveFor(t, "e7", "e5")
	if err := cp.ApplyMove(&m, true); err != nil {
		t.Fatalf("apply on copy: %v", err)
	}
	if g.Turn() != Black || g.HistoryLen() != 1 {
		t.Fatalf("original changed by a move on the copy")
	}
	if !g.Piece(6, 4).Is(Pawn) {
		t.Fatalf("original board changed by a move on the copy")
	}
	if _, err := cp.UndoMove(); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory on copy, got %v", err)
	}
}

func TestStateRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *Game
	}{
		{
			name: "mid game",
			setup: func(t *testing.T) *Game {
				g, err := NewGame(DefaultHistorySize)
				if err != nil {
					t.Fatalf("new game: %v", err)
				}
				play(t, g, "e2e4", "e7e5", "g1f3", "b8c6")
				return g
			},
		},
		{
			name: "pending promotion",
			setup: func(t *testing.T) *Game {
				g := boardFromRanks(t, White, CastlingNone,
					"________",
					"_m______",
					"_______K",
					"________",
					"________",
					"________",
					"________",
					"____k___",
				)
				m := moveFor(t, "b7", "b8")
				if err := g.ApplyMove(&m, false); err != nil {
					t.Fatalf("apply: %v", err)
				}
				return g
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := tt.setup(t)
			raw, err := json.Marshal(g.State())
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var st BoardState
			if err := json.Unmarshal(raw, &st); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			restored, err := FromState(st, 0)
			if err != nil {
				t.Fatalf("from state: %v", err)
			}
			if snap(restored) != snap(g) {
				t.Fatalf("restored position differs")
			}
			if restored.HistoryLen() != g.HistoryLen() || restored.HistorySize() != g.HistorySize() {
				t.Fatalf("history not restored: %d/%d", restored.HistoryLen(), restored.HistorySize())
			}
			_, wantPending := g.PendingPromotion()
			if _, got := restored.PendingPromotion(); got != wantPending {
				t.Fatalf("pending promotion = %v, want %v", got, wantPending)
			}
		})
	}
}

func TestFromStateRejectsBadRows(t *testing.T) {
	g, err := NewGame(DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	st := g.State()
	st.Rows[3] = "___x____"
	if _, err := FromState(st, 0); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
	st.Rows = st.Rows[:7]
	if _, err := FromState(st, 0); !errors.Is(err, ErrInvalidBoard) {
		t.Fatalf("expected ErrInvalidBoard, got %v", err)
	}
}
