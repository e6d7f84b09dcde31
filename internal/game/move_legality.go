package game

type moveDelta struct {
	dr int
	df int
}

var (
	// Ray and offset tables are listed in generation order.
	bishopDirections = [...]moveDelta{
		{dr: -1, df: -1},
		{dr: -1, df: 1},
		{dr: 1, df: -1},
		{dr: 1, df: 1},
	}
	rookDirections = [...]moveDelta{
		{dr: -1, df: 0},
		{dr: 0, df: -1},
		{dr: 0, df: 1},
		{dr: 1, df: 0},
	}
	knightOffsets = [...]moveDelta{
		{dr: -2, df: -1}, {dr: -2, df: 1},
		{dr: -1, df: -2}, {dr: -1, df: 2},
		{dr: 1, df: -2}, {dr: 1, df: 2},
		{dr: 2, df: -1}, {dr: 2, df: 1},
	}
	kingOffsets = [...]moveDelta{
		{dr: -1, df: -1}, {dr: -1, df: 0}, {dr: -1, df: 1},
		{dr: 0, df: -1}, {dr: 0, df: 1},
		{dr: 1, df: -1}, {dr: 1, df: 0}, {dr: 1, df: 1},
	}
)

// Threatened reports whether a piece of the side not to move could capture
// on (row, col).
func (g *Game) Threatened(row, col int) bool {
	if !onBoard(row, col) {
		return false
	}
	return g.attacked(g.turn.Opposite(), row, col)
}

// InCheck reports whether the side to move has its king attacked.
func (g *Game) InCheck() bool {
	k := g.kings[g.turn]
	return g.attacked(g.turn.Opposite(), k.row, k.col)
}

// attacked reports whether any piece of color by attacks (row, col).
func (g *Game) attacked(by Color, row, col int) bool {
	// Pawns attack one step diagonally forward.
	pawnRow := row - by.forward()
	for _, df := range [...]int{-1, 1} {
		if onBoard(pawnRow, col+df) && g.board[pawnRow][col+df] == NewPiece(by, Pawn) {
			return true
		}
	}
	if g.attackedByStep(NewPiece(by, Knight), row, col, knightOffsets[:]) {
		return true
	}
	if g.attackedByStep(NewPiece(by, King), row, col, kingOffsets[:]) {
		return true
	}
	queen := NewPiece(by, Queen)
	if g.attackedByRay(NewPiece(by, Bishop), queen, row, col, bishopDirections[:]) {
		return true
	}
	return g.attackedByRay(NewPiece(by, Rook), queen, row, col, rookDirections[:])
}

func (g *Game) attackedByStep(attacker Piece, row, col int, offsets []moveDelta) bool {
	for _, d := range offsets {
		r, c := row+d.dr, col+d.df
		if onBoard(r, c) && g.board[r][c] == attacker {
			return true
		}
	}
	return false
}

func (g *Game) attackedByRay(slider, queen Piece, row, col int, directions []moveDelta) bool {
	for _, d := range directions {
		r, c := row+d.dr, col+d.df
		for onBoard(r, c) {
			if pc := g.board[r][c]; !pc.IsEmpty() {
				if pc == slider || pc == queen {
					return true
				}
				break
			}
			r += d.dr
			c += d.df
		}
	}
	return false
}

// vacantRoute reports whether every square strictly between the move's source
// and destination is empty. Source and destination must share a line.
func (g *Game) vacantRoute(m *Move) bool {
	from, _ := SquareFromCoords(m.SrcRow, m.SrcCol)
	to, _ := SquareFromCoords(m.DstRow, m.DstCol)
	for _, sq := range Line(from, to) {
		if !g.board[sq.Rank()][sq.File()].IsEmpty() {
			return false
		}
	}
	return true
}

func pawnShape(g *Game, m *Move) bool {
	pawn := g.board[m.SrcRow][m.SrcCol]
	dir := pawn.Color().forward()
	dr := m.DstRow - m.SrcRow
	dc := abs(m.DstCol - m.SrcCol)
	target := g.board[m.DstRow][m.DstCol]

	switch dc {
	case 0:
		if !target.IsEmpty() {
			return false
		}
		if dr == dir {
			return true
		}
		return dr == 2*dir &&
			m.SrcRow == pawn.Color().pawnRow() &&
			g.board[m.SrcRow+dir][m.SrcCol].IsEmpty()
	case 1:
		return dr == dir && target.Belongs(pawn.Color().Opposite())
	default:
		return false
	}
}

func knightShape(_ *Game, m *Move) bool {
	dr := abs(m.DstRow - m.SrcRow)
	dc := abs(m.DstCol - m.SrcCol)
	return (dr == 1 && dc == 2) || (dr == 2 && dc == 1)
}

func bishopShape(g *Game, m *Move) bool {
	dr := abs(m.DstRow - m.SrcRow)
	dc := abs(m.DstCol - m.SrcCol)
	return dr == dc && dr != 0 && g.vacantRoute(m)
}

func rookShape(g *Game, m *Move) bool {
	dr := m.DstRow - m.SrcRow
	dc := m.DstCol - m.SrcCol
	return (dr == 0) != (dc == 0) && g.vacantRoute(m)
}

func queenShape(g *Game, m *Move) bool {
	return bishopShape(g, m) || rookShape(g, m)
}

func kingShape(_ *Game, m *Move) bool {
	dr := abs(m.DstRow - m.SrcRow)
	dc := abs(m.DstCol - m.SrcCol)
	return max(dr, dc) == 1
}

// legalRegularMove checks a non-castle move for the piece on its source
// square. It fills DstPiece, Captured, Threatened and Promotion on m. The
// board is simulated in place and always restored.
func (g *Game) legalRegularMove(m *Move) bool {
	mover := g.board[m.SrcRow][m.SrcCol]
	if mover.IsEmpty() {
		return false
	}
	m.Captured, m.Threatened, m.Promotion = false, false, false
	target := g.board[m.DstRow][m.DstCol]
	m.DstPiece = target
	color := mover.Color()
	if target.Belongs(color) {
		return false
	}
	if !movementRules[mover.Type()].shape(g, m) {
		return false
	}
	m.Captured = !target.IsEmpty()

	g.board[m.DstRow][m.DstCol] = mover
	g.board[m.SrcRow][m.SrcCol] = Empty

	rival := color.Opposite()
	isKing := mover.Is(King)
	var legal bool
	if isKing {
		legal = !g.attacked(rival, m.DstRow, m.DstCol)
	} else {
		k := g.kings[color]
		legal = !g.attacked(rival, k.row, k.col)
	}
	if legal {
		if !isKing {
			m.Threatened = g.attacked(rival, m.DstRow, m.DstCol)
		}
		m.Promotion = mover.Is(Pawn) && m.DstRow == color.LastRow()
	}

	g.board[m.SrcRow][m.SrcCol] = mover
	g.board[m.DstRow][m.DstCol] = target
	return legal
}

// legalCastle checks a castle move whose source is the rook. The king may not
// be in check, and may neither pass through nor land on an attacked square.
func (g *Game) legalCastle(m *Move) bool {
	rook := g.board[m.SrcRow][m.SrcCol]
	if !rook.Is(Rook) {
		return false
	}
	color := rook.Color()
	first := color.FirstRow()
	side, ok := sideOfRookCol(m.SrcCol)
	if !ok || m.SrcRow != first || !g.castling.HasSide(color, side) {
		return false
	}
	king := NewPiece(color, King)
	if g.board[first][KingCol] != king {
		return false
	}
	rival := color.Opposite()
	if g.attacked(rival, first, KingCol) {
		return false
	}

	start, end := m.SrcCol+1, KingCol-1
	if m.SrcCol > KingCol {
		start, end = KingCol+1, m.SrcCol-1
	}
	for col := start; col <= end; col++ {
		if !g.board[first][col].IsEmpty() {
			return false
		}
		g.board[first][KingCol] = Empty
		g.board[first][col] = king
		safe := !g.attacked(rival, first, col)
		g.board[first][col] = Empty
		g.board[first][KingCol] = king
		if !safe {
			return false
		}
	}
	return true
}
