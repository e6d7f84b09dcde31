package game

import (
	"errors"
	"fmt"

	"minimax_chess/internal/movebuf"
)

// UndoMove takes back the last recorded ply and returns it.
func (g *Game) UndoMove() (Move, error) {
	if g.pending != nil {
		return Move{}, ErrPromotionPending
	}
	if g.history == nil || g.history.Empty() {
		return Move{}, ErrEmptyHistory
	}
	m, err := g.history.PopBack()
	if err != nil {
		if errors.Is(err, movebuf.ErrEmpty) {
			return Move{}, ErrEmptyHistory
		}
		return Move{}, fmt.Errorf("%w: %v", ErrMemoryFailure, err)
	}
	if err := g.revert(&m); err != nil {
		return m, err
	}
	return m, nil
}

// revert restores the position before m. m must be the last ply played.
func (g *Game) revert(m *Move) error {
	color := m.SrcPiece.Color()
	rival := color.Opposite()

	if m.Castle {
		row := m.SrcRow
		g.board[row][castleKingCol(m.SrcCol)] = Empty
		g.board[row][m.DstCol] = Empty
		g.board[row][KingCol] = NewPiece(color, King)
		g.board[row][m.SrcCol] = m.SrcPiece
		g.kings[color] = position{row: row, col: KingCol}
	} else {
		original := m.SrcPiece
		if m.Promotion {
			original = NewPiece(color, Pawn)
			g.armies[color].add(m.SrcPiece.Type(), -1)
			g.armies[color].add(Pawn, 1)
		}
		g.board[m.SrcRow][m.SrcCol] = original
		g.board[m.DstRow][m.DstCol] = m.DstPiece
		if original.Is(King) {
			g.kings[color] = position{row: m.SrcRow, col: m.SrcCol}
		}
		if m.Captured {
			g.armies[rival].add(m.DstPiece.Type(), 1)
		}
	}

	g.castling = m.Castling
	g.turn = color
	if err := g.updateStatus(); err != nil {
		return fmt.Errorf("%w: %v", ErrMemoryFailure, err)
	}
	return nil
}

// IsUndoAvailable reports whether the human playing color human may take back
// a move pair. A lone engine opening move cannot be undone.
func (g *Game) IsUndoAvailable(human Color) bool {
	n := g.HistoryLen()
	if n == 0 || g.pending != nil {
		return false
	}
	return !(human == Black && n == 1)
}
