package game

import "fmt"

// ApplyMove plays m for the side to move. Engine moves come from the move
// generator and skip legality checks. On success m carries the annotations
// of the played move.
//
// A human move that reaches the last rank leaves the game waiting for
// SetPawnPromotion: m.Promotion is set and the turn does not pass yet. A
// move with Promotion preset and SrcPiece naming the new piece is played in
// one step.
func (g *Game) ApplyMove(m *Move, engine bool) error {
	if m == nil {
		return ErrInvalidArgument
	}
	if g.pending != nil {
		return ErrPromotionPending
	}
	if !onBoard(m.SrcRow, m.SrcCol) || (!m.Castle && !onBoard(m.DstRow, m.DstCol)) {
		return ErrInvalidPosition
	}
	if m.Promotion && (m.SrcPiece.IsEmpty() || m.SrcPiece.Is(Pawn)) {
		// The promotion piece has not been chosen yet.
		m.Promotion = false
	}
	if !g.board[m.SrcRow][m.SrcCol].Belongs(g.turn) {
		return fmt.Errorf("%w: no %s piece at %d,%d", ErrInvalidArgument, g.turn, m.SrcRow, m.SrcCol)
	}
	if !m.Promotion {
		m.SrcPiece = g.board[m.SrcRow][m.SrcCol]
	}
	if !m.SrcPiece.Belongs(g.turn) {
		return fmt.Errorf("%w: cannot play a %s piece for %s", ErrInvalidArgument, m.SrcPiece.Color(), g.turn)
	}
	m.Castling = g.castling

	switch {
	case m.Castle:
		if !m.SrcPiece.Is(Rook) {
			return ErrCastleNoRook
		}
		if !engine && !g.legalCastle(m) {
			return ErrIllegalCastle
		}
		g.applyCastle(m)
	case m.Promotion:
		if err := g.checkPromotion(m, engine); err != nil {
			return err
		}
		g.applyRegular(m)
		return g.SetPawnPromotion(m, true)
	default:
		if engine {
			g.annotateCapture(m)
			m.Promotion = m.SrcPiece.Is(Pawn) && m.DstRow == g.turn.LastRow()
		} else if !g.legalRegularMove(m) {
			return ErrIllegalMove
		}
		g.applyRegular(m)
		if m.Promotion {
			if engine {
				m.SrcPiece = NewPiece(g.turn, Queen)
				return g.SetPawnPromotion(m, true)
			}
			pending := *m
			g.pending = &pending
			return nil
		}
	}
	return g.finishPly(m)
}

// SetPawnPromotion completes a promotion: the pawn on the destination becomes
// m.SrcPiece and the turn passes. Human calls must match the pending move.
func (g *Game) SetPawnPromotion(m *Move, engine bool) error {
	if m == nil {
		return ErrInvalidArgument
	}
	color := g.turn
	if !engine {
		if g.pending == nil {
			return fmt.Errorf("%w: no promotion pending", ErrInvalidArgument)
		}
		p := g.pending
		if m.SrcRow != p.SrcRow || m.SrcCol != p.SrcCol || m.DstRow != p.DstRow || m.DstCol != p.DstCol {
			return fmt.Errorf("%w: promotion does not match pending move %s", ErrInvalidArgument, p)
		}
		if !validPromotionPiece(m.SrcPiece, color) {
			return fmt.Errorf("%w: cannot promote to %s", ErrInvalidArgument, m.SrcPiece)
		}
		m.DstPiece = p.DstPiece
		m.Captured = p.Captured
		m.Threatened = p.Threatened
		m.Castling = p.Castling
		m.Castle = false
		m.Promotion = true
		g.pending = nil
	}

	g.board[m.DstRow][m.DstCol] = m.SrcPiece
	g.armies[color].add(m.SrcPiece.Type(), 1)
	g.armies[color].add(Pawn, -1)
	return g.finishPly(m)
}

// PromotePending completes the pending promotion with a piece of kind t.
func (g *Game) PromotePending(t PieceType) (Move, error) {
	if g.pending == nil {
		return Move{}, fmt.Errorf("%w: no promotion pending", ErrInvalidArgument)
	}
	m := *g.pending
	m.SrcPiece = NewPiece(g.turn, t)
	if err := g.SetPawnPromotion(&m, false); err != nil {
		return Move{}, err
	}
	return m, nil
}

func validPromotionPiece(pc Piece, c Color) bool {
	return pc.Belongs(c) && PromotionAll.Contains(pc.Type())
}

// checkPromotion verifies a preset promotion. Engine moves only get their
// capture bookkeeping filled in.
func (g *Game) checkPromotion(m *Move, engine bool) error {
	if engine {
		g.annotateCapture(m)
		return nil
	}
	if !validPromotionPiece(m.SrcPiece, g.turn) {
		return fmt.Errorf("%w: cannot promote to %s", ErrInvalidArgument, m.SrcPiece)
	}
	if src := g.board[m.SrcRow][m.SrcCol]; !src.Belongs(g.turn) || !src.Is(Pawn) {
		return ErrIllegalMove
	}
	if !g.legalRegularMove(m) || !m.Promotion {
		return ErrIllegalMove
	}
	return nil
}

func (g *Game) annotateCapture(m *Move) {
	m.DstPiece = g.board[m.DstRow][m.DstCol]
	m.Captured = !m.DstPiece.IsEmpty()
}

// applyRegular moves the board piece from source to destination. Promotions
// leave the pawn on the destination until SetPawnPromotion.
func (g *Game) applyRegular(m *Move) {
	mover := g.board[m.SrcRow][m.SrcCol]
	g.board[m.DstRow][m.DstCol] = mover
	g.board[m.SrcRow][m.SrcCol] = Empty

	color := mover.Color()
	switch mover.Type() {
	case King:
		g.kings[color] = position{row: m.DstRow, col: m.DstCol}
		g.castling = g.castling.WithoutColor(color)
	case Rook:
		g.clearRookRight(color, m.SrcRow, m.SrcCol)
	}
	if m.Captured {
		rival := color.Opposite()
		g.armies[rival].add(m.DstPiece.Type(), -1)
		if m.DstPiece.Is(Rook) {
			g.clearRookRight(rival, m.DstRow, m.DstCol)
		}
	}
}

// clearRookRight drops the castling right tied to a rook home square.
func (g *Game) clearRookRight(c Color, row, col int) {
	if row != c.FirstRow() {
		return
	}
	if side, ok := sideOfRookCol(col); ok {
		g.castling = g.castling.Without(CastlingRight(c, side))
	}
}

// applyCastle moves the king two squares toward the rook and the rook next to
// it on the inner side. The destination of m becomes the rook's new square.
func (g *Game) applyCastle(m *Move) {
	rook := g.board[m.SrcRow][m.SrcCol]
	color := rook.Color()
	row := m.SrcRow
	kingCol := castleKingCol(m.SrcCol)
	rookCol := castleRookCol(m.SrcCol)

	g.board[row][KingCol] = Empty
	g.board[row][m.SrcCol] = Empty
	g.board[row][kingCol] = NewPiece(color, King)
	g.board[row][rookCol] = rook

	m.DstRow = row
	m.DstCol = rookCol
	m.DstPiece = Empty
	m.Captured = false
	g.kings[color] = position{row: row, col: kingCol}
	g.castling = g.castling.WithoutColor(color)
}

// finishPly records m and hands the turn to the other side.
func (g *Game) finishPly(m *Move) error {
	if g.history != nil {
		if _, err := g.history.PushEvict(*m); err != nil {
			return fmt.Errorf("%w: %v", ErrMemoryFailure, err)
		}
	}
	g.flipTurn()
	if err := g.updateStatus(); err != nil {
		return fmt.Errorf("%w: %v", ErrMemoryFailure, err)
	}
	return nil
}
