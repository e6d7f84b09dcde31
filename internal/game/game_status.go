package game

// hasLegalMove scans the side to move's pieces row by row until one of them
// has a legal move.
func (g *Game) hasLegalMove() (bool, error) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !g.board[row][col].Belongs(g.turn) {
				continue
			}
			moves, err := g.PieceMoves(row, col, false, false)
			if err != nil {
				return false, err
			}
			if len(moves) > 0 {
				return true, nil
			}
		}
	}
	return false, nil
}

// computeStatus classifies the position for the side to move, whose king
// stands on (kingRow, kingCol).
func (g *Game) computeStatus(kingRow, kingCol int) (Status, error) {
	inCheck := g.attacked(g.turn.Opposite(), kingRow, kingCol)
	hasMove, err := g.hasLegalMove()
	if err != nil {
		return StatusFailure, err
	}
	switch {
	case hasMove && inCheck:
		return StatusCheck, nil
	case hasMove:
		return StatusNoCheck, nil
	case inCheck:
		return winFor(g.turn.Opposite()), nil
	default:
		return StatusTied, nil
	}
}

func (g *Game) updateStatus() error {
	k := g.kings[g.turn]
	status, err := g.computeStatus(k.row, k.col)
	g.status = status
	return err
}
