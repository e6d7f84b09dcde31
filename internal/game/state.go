package game

import (
	"fmt"
	"strings"
)

// SquareState names a square in algebraic form.
type SquareState struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Name string `json:"name"`
}

// BoardState is a serializable representation of the game state.
type BoardState struct {
	// Rows holds the board symbols, row 0 (White's first rank) first.
	Rows       []string        `json:"rows"`
	Turn       Color           `json:"turn"`
	Castling   CastlingRights  `json:"castling"`
	Kings      [2]SquareState  `json:"kings"`
	Armies     map[string]Army `json:"armies"`
	Status     *Status         `json:"status,omitempty"`
	InCheck    bool            `json:"inCheck"`
	GameOver   bool            `json:"gameOver"`
	History    []Move          `json:"history,omitempty"`
	HistoryCap int             `json:"historyCap"`
	Pending    *Move           `json:"pendingPromotion,omitempty"`
}

func squareState(p position) SquareState {
	sq, _ := SquareFromCoords(p.row, p.col)
	return SquareState{Row: p.row, Col: p.col, Name: sq.String()}
}

// State snapshots every field needed to restore the game.
func (g *Game) State() BoardState {
	rows := make([]string, BoardSize)
	symbols := g.Symbols()
	for row := range symbols {
		rows[row] = string(symbols[row][:])
	}
	status := g.status
	st := BoardState{
		Rows:     rows,
		Turn:     g.turn,
		Castling: g.castling,
		Kings:    [2]SquareState{squareState(g.kings[White]), squareState(g.kings[Black])},
		Armies: map[string]Army{
			White.String(): g.armies[White],
			Black.String(): g.armies[Black],
		},
		Status:     &status,
		InCheck:    status == StatusCheck || (status.Terminal() && status != StatusTied),
		GameOver:   status.Terminal(),
		History:    g.History(),
		HistoryCap: g.historySize,
	}
	if g.pending != nil {
		pending := *g.pending
		st.Pending = &pending
	}
	return st
}

// FromState restores a game saved with State. Armies and king squares are
// derived from the board; a missing status is recomputed.
func FromState(st BoardState, historySize int) (*Game, error) {
	if len(st.Rows) != BoardSize {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoard, BoardSize, len(st.Rows))
	}
	var grid Grid
	for row, line := range st.Rows {
		line = strings.TrimSpace(line)
		if len(line) != BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoard, row+1, len(line))
		}
		for col := 0; col < BoardSize; col++ {
			pc, ok := PieceFromSymbol(line[col])
			if !ok {
				return nil, fmt.Errorf("%w: unknown symbol %q at row %d", ErrInvalidBoard, line[col], row+1)
			}
			grid[row][col] = pc
		}
	}
	if st.HistoryCap > 0 && historySize <= 0 {
		historySize = st.HistoryCap
	}
	var pendingDst *position
	if st.Pending != nil {
		pendingDst = &position{row: st.Pending.DstRow, col: st.Pending.DstCol}
	}
	g, err := newFromBoard(grid, st.Turn, st.Castling, historySize, pendingDst)
	if err != nil {
		return nil, err
	}
	if st.Status != nil && *st.Status != StatusFailure {
		g.status = *st.Status
	}
	for _, m := range st.History {
		if _, err := g.history.PushEvict(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMemoryFailure, err)
		}
	}
	if st.Pending != nil {
		pending := *st.Pending
		g.pending = &pending
	}
	return g, nil
}
