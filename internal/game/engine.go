// Package game implements the chess rules engine: board state, legality,
// move generation, status and undo.
package game

import (
	"fmt"

	"minimax_chess/internal/movebuf"
)

// DefaultHistorySize is the number of plies kept for undo.
const DefaultHistorySize = 6

type position struct {
	row int
	col int
}

// Game is the authoritative state of one chess game.
type Game struct {
	board    Grid
	turn     Color
	castling CastlingRights
	kings    [2]position
	armies   [2]Army
	status   Status

	// history is nil on search copies.
	history     *movebuf.Buffer[Move]
	historySize int

	// pending holds a human move waiting for its promotion piece.
	pending *Move
}

// NewGame returns a game in the standard starting position.
func NewGame(historySize int) (*Game, error) {
	g := &Game{}
	if err := g.initHistory(historySize); err != nil {
		return nil, err
	}
	g.Reset()
	return g, nil
}

// Reset restores the standard starting position and clears history.
func (g *Game) Reset() {
	g.board = Grid{}
	setup := func(color Color) {
		order := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
		first := color.FirstRow()
		for col, pt := range order {
			g.board[first][col] = NewPiece(color, pt)
		}
		for col := 0; col < BoardSize; col++ {
			g.board[color.pawnRow()][col] = NewPiece(color, Pawn)
		}
		g.kings[color] = position{row: first, col: KingCol}
		g.armies[color] = startingArmy()
	}
	setup(White)
	setup(Black)

	g.turn = White
	g.castling = CastlingAll
	g.status = StatusNoCheck
	g.pending = nil
	if g.history != nil {
		g.history.Clear()
	}
}

// NewFromBoard builds a game from an arbitrary position. Castling rights whose
// king or rook is not on its home square are dropped.
func NewFromBoard(grid Grid, turn Color, rights CastlingRights, historySize int) (*Game, error) {
	return newFromBoard(grid, turn, rights, historySize, nil)
}

// newFromBoard accepts a pawn on its last rank only at promoting, the square
// of a pending promotion.
func newFromBoard(grid Grid, turn Color, rights CastlingRights, historySize int, promoting *position) (*Game, error) {
	g := &Game{board: grid, turn: turn}
	if err := g.initHistory(historySize); err != nil {
		return nil, err
	}

	kingsSeen := [2]int{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pc := grid[row][col]
			if pc.IsEmpty() {
				continue
			}
			if pc > BlackKing {
				return nil, fmt.Errorf("%w: unknown piece %d at %d,%d", ErrInvalidBoard, pc, row, col)
			}
			c := pc.Color()
			switch pc.Type() {
			case King:
				kingsSeen[c]++
				g.kings[c] = position{row: row, col: col}
			case Pawn:
				pendingHere := promoting != nil && promoting.row == row && promoting.col == col
				if row == c.FirstRow() || (row == c.LastRow() && !pendingHere) {
					return nil, fmt.Errorf("%w: pawn on rank %d", ErrInvalidBoard, row+1)
				}
				g.armies[c].add(Pawn, 1)
			default:
				g.armies[c].add(pc.Type(), 1)
			}
		}
	}
	for _, c := range []Color{White, Black} {
		if kingsSeen[c] != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvalidBoard, c, kingsSeen[c])
		}
	}

	g.castling = g.sanitizeCastling(rights)
	if g.attacked(turn, g.kings[turn.Opposite()].row, g.kings[turn.Opposite()].col) {
		return nil, fmt.Errorf("%w: %s king can be captured", ErrInvalidBoard, turn.Opposite())
	}
	if err := g.updateStatus(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) initHistory(historySize int) error {
	if historySize <= 0 {
		return fmt.Errorf("%w: history size %d", ErrInvalidArgument, historySize)
	}
	buf, err := movebuf.New[Move](historySize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMemoryFailure, err)
	}
	g.history = buf
	g.historySize = historySize
	return nil
}

func (g *Game) sanitizeCastling(rights CastlingRights) CastlingRights {
	for _, c := range []Color{White, Black} {
		first := c.FirstRow()
		kingHome := g.board[first][KingCol] == NewPiece(c, King)
		for _, side := range []CastlingSide{CastleKingside, CastleQueenside} {
			if !rights.HasSide(c, side) {
				continue
			}
			if !kingHome || g.board[first][side.RookCol()] != NewPiece(c, Rook) {
				rights = rights.Without(CastlingRight(c, side))
			}
		}
	}
	return rights
}

// Copy returns a deep copy of the position without move history. Moves applied
// to the copy are never recorded.
func (g *Game) Copy() *Game {
	cp := *g
	cp.history = nil
	if g.pending != nil {
		pending := *g.pending
		cp.pending = &pending
	}
	return &cp
}

func (g *Game) Turn() Color { return g.turn }
func (g *Game) Status() Status { return g.status }
func (g *Game) Castling() CastlingRights { return g.castling }
func (g *Game) Army(c Color) Army { return g.armies[c] }
func (g *Game) Board() Grid { return g.board }
func (g *Game) HistorySize() int { return g.historySize }
func (g *Game) Piece(row, col int) Piece { return g.pieceAt(row, col) }
func (g *Game) King(c Color) (int, int) { return g.kings[c].row, g.kings[c].col }
func (g *Game) IsSearchCopy() bool { return g.history == nil }
func (g *Game) pieceAt(row, col int) Piece { return g.board[row][col] }

// Symbols renders the board as single characters, row 0 first.
func (g *Game) Symbols() [BoardSize][BoardSize]byte {
	var out [BoardSize][BoardSize]byte
	for row := range g.board {
		for col, pc := range g.board[row] {
			out[row][col] = pc.Symbol()
		}
	}
	return out
}

// History returns the recorded plies, oldest first.
func (g *Game) History() []Move {
	if g.history == nil {
		return nil
	}
	return g.history.Items()
}

func (g *Game) HistoryLen() int {
	if g.history == nil {
		return 0
	}
	return g.history.Len()
}

// PendingPromotion returns the move awaiting SetPawnPromotion, if any.
func (g *Game) PendingPromotion() (Move, bool) {
	if g.pending == nil {
		return Move{}, false
	}
	return *g.pending, true
}

func (g *Game) flipTurn() { g.turn = g.turn.Opposite() }
