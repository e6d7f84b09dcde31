package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestFoolsMate(t *testing.T) {
	g, err := NewGame(DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if g.Status() != StatusBlackWins {
		t.Fatalf("expected black-wins, got %s", g.Status())
	}
	if !g.InCheck() {
		t.Fatalf("white king should be in check")
	}
	moves, err := g.LegalMoves()
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("mated side should have no moves, got %v", moveNames(moves))
	}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !g.Piece(row, col).Belongs(White) {
				continue
			}
			got, err := g.GenerateMoves(row, col)
			if err != nil {
				t.Fatalf("generate %d,%d: %v", row, col, err)
			}
			if len(got) != 0 {
				t.Fatalf("piece at %d,%d has moves %v", row, col, moveNames(got))
			}
		}
	}
}

func TestStatusFromPosition(t *testing.T) {
	tests := []struct {
		name  string
		turn  Color
		ranks []string
		want  Status
	}{
		{
			name: "king and pawn stalemate",
			turn: Black,
			ranks: []string{
				"K_______",
				"m_______",
				"_k______",
				"________",
				"________",
				"________",
				"________",
				"________",
			},
			want: StatusTied,
		},
		{
			name: "queen stalemate",
			turn: Black,
			ranks: []string{
				"_______K",
				"_____k__",
				"______q_",
				"________",
				"________",
				"________",
				"________",
				"________",
			},
			want: StatusTied,
		},
		{
			name: "back rank mate",
			turn: Black,
			ranks: []string{
				"r______K",
				"______MM",
				"________",
				"________",
				"________",
				"________",
				"________",
				"____k___",
			},
			want: StatusWhiteWins,
		},
		{
			name: "check with escape",
			turn: Black,
			ranks: []string{
				"r______K",
				"________",
				"________",
				"________",
				"________",
				"________",
				"________",
				"____k___",
			},
			want: StatusCheck,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := boardFromRanks(t, tt.turn, CastlingNone, tt.ranks...)
			if g.Status() != tt.want {
				t.Fatalf("status = %s, want %s", g.Status(), tt.want)
			}
		})
	}
}

func TestNewFromBoardRejectsImpossiblePositions(t *testing.T) {
	start, err := NewGame(DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	tests := []struct {
		name   string
		mutate func(*Grid)
	}{
		{
			name:   "missing king",
			mutate: func(g *Grid) { g[7][KingCol] = Empty },
		},
		{
			name:   "pawn on first rank",
			mutate: func(g *Grid) { g[0][1] = WhitePawn },
		},
		{
			name:   "side not to move in check",
			mutate: func(g *Grid) { g[6][4] = WhiteQueen },
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			grid := start.Board()
			tt.mutate(&grid)
			if _, err := NewFromBoard(grid, White, CastlingAll, DefaultHistorySize); !errors.Is(err, ErrInvalidBoard) {
				t.Fatalf("expected ErrInvalidBoard, got %v", err)
			}
		})
	}
}

func TestCastlingRightsUpdates(t *testing.T) {
	ranks := []string{
		"R___K__R",
		"________",
		"________",
		"________",
		"________",
		"________",
		"________",
		"r___k__r",
	}
	tests := []struct {
		name  string
		moves []string
		want  CastlingRights
	}{
		{name: "king move clears both", moves: []string{"e1e2"}, want: CastlingBlackKingside | CastlingBlackQueenside},
		{name: "rook move clears its side", moves: []string{"h1h2"}, want: CastlingAll.Without(CastlingWhiteKingside)},
		{name: "captured rook clears rival side", moves: []string{"a1a8"}, want: CastlingWhiteKingside | CastlingBlackKingside},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := boardFromRanks(t, White, CastlingAll, ranks...)
			play(t, g, tt.moves...)
			if g.Castling() != tt.want {
				t.Fatalf("castling = %s, want %s", g.Castling(), tt.want)
			}
		})
	}
}

func TestApplyCastle(t *testing.T) {
	tests := []struct {
		name     string
		rookCol  int
		kingCol  int
		rookDest int
	}{
		{name: "kingside", rookCol: rightRookCol, kingCol: 6, rookDest: 5},
		{name: "queenside", rookCol: leftRookCol, kingCol: 2, rookDest: 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := boardFromRanks(t, White, CastlingAll,
				"R___K__R",
				"________",
				"________",
				"________",
				"________",
				"________",
				"________",
				"r___k__r",
			)
			before := snap(g)
			m := NewCastleMove(0, tt.rookCol)
			if err := g.ApplyMove(&m, false); err != nil {
				t.Fatalf("castle: %v", err)
			}
			if g.Piece(0, tt.kingCol) != WhiteKing || g.Piece(0, tt.rookDest) != WhiteRook {
				t.Fatalf("king or rook misplaced after castle")
			}
			if !g.Piece(0, KingCol).IsEmpty() || !g.Piece(0, tt.rookCol).IsEmpty() {
				t.Fatalf("home squares should be empty after castle")
			}
			if m.DstCol != tt.rookDest {
				t.Fatalf("castle destination = %d, want %d", m.DstCol, tt.rookDest)
			}
			if row, col := g.King(White); row != 0 || col != tt.kingCol {
				t.Fatalf("king position = %d,%d", row, col)
			}
			if g.Castling().Has(CastlingRightsForColor(White)) {
				t.Fatalf("white castling rights should be cleared, got %s", g.Castling())
			}
			if g.Turn() != Black {
				t.Fatalf("turn should pass to black")
			}

			if _, err := g.UndoMove(); err != nil {
				t.Fatalf("undo: %v", err)
			}
			if snap(g) != before {
				t.Fatalf("undo did not restore the position")
			}
		})
	}
}

func TestApplyCastleErrors(t *testing.T) {
	g := boardFromRanks(t, White, CastlingAll,
		"R___KR__",
		"________",
		"________",
		"________",
		"________",
		"________",
		"________",
		"n___k__r",
	)
	m := NewCastleMove(0, leftRookCol)
	if err := g.ApplyMove(&m, false); !errors.Is(err, ErrCastleNoRook) {
		t.Fatalf("expected ErrCastleNoRook, got %v", err)
	}
	m = NewCastleMove(0, rightRookCol)
	if err := g.ApplyMove(&m, false); !errors.Is(err, ErrIllegalCastle) {
		t.Fatalf("expected ErrIllegalCastle, got %v", err)
	}
}

func TestIllegalHumanMoves(t *testing.T) {
	g, err := NewGame(DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "pawn triple step", from: "e2", to: "e5"},
		{name: "bishop through pawn", from: "c1", to: "e3"},
		{name: "knight onto own piece", from: "g1", to: "e2"},
		{name: "rook diagonal", from: "a1", to: "b2"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			m := moveFor(t, tt.from, tt.to)
			if err := g.ApplyMove(&m, false); !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("expected ErrIllegalMove, got %v", err)
			}
		})
	}
	if g.HistoryLen() != 0 || g.Turn() != White {
		t.Fatalf("rejected moves must not change the game")
	}
	m := NewMove(1, 4, 8, 4)
	if err := g.ApplyMove(&m, false); !errors.Is(err, ErrInvalidPosition) {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
}

func TestCaptureUpdatesArmy(t *testing.T) {
	g, err := NewGame(DefaultHistorySize)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	play(t, g, "e2e4", "d7d5")
	m := moveFor(t, "e4", "d5")
	if err := g.ApplyMove(&m, false); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if !m.Captured || m.DstPiece != BlackPawn {
		t.Fatalf("capture not annotated: %+v", m)
	}
	if got := g.Army(Black).Pawns; got != 7 {
		t.Fatalf("black pawns = %d, want 7", got)
	}
	if !m.Threatened {
		t.Fatalf("pawn on d5 is attacked by the queen")
	}
}

func TestHumanPromotionWaitsForPiece(t *testing.T) {
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
	before := snap(g)

	m := moveFor(t, "b7", "b8")
	if err := g.ApplyMove(&m, false); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !m.Promotion {
		t.Fatalf("move should be flagged as promotion")
	}
	if _, ok := g.PendingPromotion(); !ok {
		t.Fatalf("promotion should be pending")
	}
	if g.Turn() != White || g.HistoryLen() != 0 {
		t.Fatalf("turn and history must wait for the promotion piece")
	}

	other := moveFor(t, "e1", "e2")
	if err := g.ApplyMove(&other, false); !errors.Is(err, ErrPromotionPending) {
		t.Fatalf("expected ErrPromotionPending, got %v", err)
	}
	if _, err := g.UndoMove(); !errors.Is(err, ErrPromotionPending) {
		t.Fatalf("expected ErrPromotionPending on undo, got %v", err)
	}
	if _, err := g.PromotePending(King); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for king, got %v", err)
	}

	played, err := g.PromotePending(Knight)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if played.SrcPiece != WhiteKnight || g.Piece(7, 1) != WhiteKnight {
		t.Fatalf("pawn should become a knight")
	}
	if a := g.Army(White); a.Pawns != 0 || a.Knights != 1 {
		t.Fatalf("army not updated: %+v", a)
	}
	if g.Turn() != Black || g.HistoryLen() != 1 {
		t.Fatalf("turn should pass after promotion")
	}

	if _, err := g.UndoMove(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if snap(g) != before {
		t.Fatalf("undo did not restore the pawn")
	}
}

func TestPresetAndEnginePromotion(t *testing.T) {
	ranks := []string{
		"________",
		"_m______",
		"_______K",
		"________",
		"________",
		"________",
		"________",
		"____k___",
	}
	tests := []struct {
		name    string
		move    Move
		engine  bool
		want    Piece
		wantErr error
	}{
		{name: "human preset rook", move: NewPromotion(6, 1, 7, 1, WhiteRook), want: WhiteRook},
		{name: "engine expanded bishop", move: NewPromotion(6, 1, 7, 1, WhiteBishop), engine: true, want: WhiteBishop},
		{name: "engine unexpanded", move: NewMove(6, 1, 7, 1), engine: true, want: WhiteQueen},
		{name: "human preset king", move: NewPromotion(6, 1, 7, 1, WhiteKing), wantErr: ErrInvalidArgument},
		{name: "human preset rival piece", move: NewPromotion(6, 1, 7, 1, BlackQueen), wantErr: ErrInvalidArgument},
		{name: "human preset off the last rank", move: NewPromotion(6, 1, 6, 2, WhiteQueen), wantErr: ErrIllegalMove},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			g := boardFromRanks(t, White, CastlingNone, ranks...)
			m := tt.move
			err := g.ApplyMove(&m, tt.engine)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if got := g.Piece(7, 1); got != tt.want {
				t.Fatalf("promoted to %s, want %s", got, tt.want)
			}
			if g.Turn() != Black {
				t.Fatalf("turn should pass")
			}
		})
	}
}

func TestPromotionOfRivalPawnRejected(t *testing.T) {
	for _, engine := range []bool{false, true} {
		engine := engine
		t.Run(fmt.Sprintf("engine %v", engine), func(t *testing.T) {
			g := boardFromRanks(t, White, CastlingNone,
				"____K___",
				"________",
				"________",
				"________",
				"________",
				"________",
				"M_______",
				"____k___",
			)
			before := snap(g)
			m := NewPromotion(1, 0, 0, 0, WhiteQueen)
			if err := g.ApplyMove(&m, engine); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if snap(g) != before {
				t.Fatalf("rejected promotion changed the position")
			}
			if n := g.Army(White).Count(Pawn); n != 0 {
				t.Fatalf("white pawns = %d, want 0", n)
			}
			if n := g.Army(Black).Count(Pawn); n != 1 {
				t.Fatalf("black pawns = %d, want 1", n)
			}
		})
	}
}
