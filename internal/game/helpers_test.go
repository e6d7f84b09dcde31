package game

import "testing"

// boardFromRanks builds a game from eight rank strings, rank 8 first, using
// the board symbols.
func boardFromRanks(t *testing.T, turn Color, rights CastlingRights, ranks ...string) *Game {
	t.Helper()
	if len(ranks) != BoardSize {
		t.Fatalf("expected %d ranks, got %d", BoardSize, len(ranks))
	}
	var grid Grid
	for i, line := range ranks {
		if len(line) != BoardSize {
			t.Fatalf("rank %d has %d cells", BoardSize-i, len(line))
		}
		row := BoardSize - 1 - i
		for col := 0; col < BoardSize; col++ {
			pc, ok := PieceFromSymbol(line[col])
			if !ok {
				t.Fatalf("unknown symbol %q", line[col])
			}
			grid[row][col] = pc
		}
	}
	g, err := NewFromBoard(grid, turn, rights, DefaultHistorySize)
	if err != nil {
		t.Fatalf("new from board: %v", err)
	}
	return g
}

func coords(t *testing.T, name string) (int, int) {
	t.Helper()
	sq, ok := CoordToSquare(name)
	if !ok {
		t.Fatalf("invalid square %q", name)
	}
	return sq.Rank(), sq.File()
}

func moveFor(t *testing.T, from, to string) Move {
	t.Helper()
	sr, sc := coords(t, from)
	dr, dc := coords(t, to)
	return NewMove(sr, sc, dr, dc)
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m := moveFor(t, s[:2], s[2:4])
		if err := g.ApplyMove(&m, false); err != nil {
			t.Fatalf("apply %s: %v", s, err)
		}
	}
}

func moveNames(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}

func destinations(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		if m.Castle {
			out = append(out, m.String())
			continue
		}
		out = append(out, m.To().String())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type snapshot struct {
	board    Grid
	turn     Color
	castling CastlingRights
	kings    [2]position
	armies   [2]Army
	status   Status
}

func snap(g *Game) snapshot {
	return snapshot{
		board:    g.board,
		turn:     g.turn,
		castling: g.castling,
		kings:    g.kings,
		armies:   g.armies,
		status:   g.status,
	}
}
