package game

import (
	"fmt"

	"minimax_chess/internal/movebuf"
)

// MaxMovesPerPiece bounds a single piece's move list, promotions expanded.
const MaxMovesPerPiece = 32

type movementRule struct {
	// shape checks the move geometry on the current board.
	shape func(g *Game, m *Move) bool
	// candidates proposes destinations in generation order.
	candidates func(g *Game, row, col int, try func(dstRow, dstCol int))
	// castles reports whether the piece can take part in castling.
	castles bool
}

// movementRules is indexed by PieceType.
var movementRules = [...]movementRule{
	Pawn:   {shape: pawnShape, candidates: pawnCandidates},
	Knight: {shape: knightShape, candidates: stepCandidates(knightOffsets[:])},
	Bishop: {shape: bishopShape, candidates: rayCandidates(bishopDirections[:])},
	Rook:   {shape: rookShape, candidates: rayCandidates(rookDirections[:]), castles: true},
	Queen:  {shape: queenShape, candidates: rayCandidates(append(bishopDirections[:], rookDirections[:]...))},
	King:   {shape: kingShape, candidates: stepCandidates(kingOffsets[:]), castles: true},
}

func pawnCandidates(g *Game, row, col int, try func(int, int)) {
	color := g.board[row][col].Color()
	dir := color.forward()
	if color == Black {
		try(row+2*dir, col)
	}
	try(row+dir, col-1)
	try(row+dir, col)
	try(row+dir, col+1)
	if color == White {
		try(row+2*dir, col)
	}
}

func stepCandidates(offsets []moveDelta) func(*Game, int, int, func(int, int)) {
	return func(_ *Game, row, col int, try func(int, int)) {
		for _, d := range offsets {
			try(row+d.dr, col+d.df)
		}
	}
}

func rayCandidates(directions []moveDelta) func(*Game, int, int, func(int, int)) {
	return func(g *Game, row, col int, try func(int, int)) {
		for _, d := range directions {
			r, c := row+d.dr, col+d.df
			for onBoard(r, c) {
				try(r, c)
				if !g.board[r][c].IsEmpty() {
					break
				}
				r += d.dr
				c += d.df
			}
		}
	}
}

// PieceMoves lists the legal moves of the piece on (row, col). With sorted the
// regular moves are ordered by destination row then column; castle moves come
// last. With forSearch each promotion becomes one move per promotion piece.
func (g *Game) PieceMoves(row, col int, sorted, forSearch bool) ([]Move, error) {
	if !onBoard(row, col) {
		return nil, ErrInvalidPosition
	}
	pc := g.board[row][col]
	if pc.IsEmpty() {
		return nil, nil
	}
	buf, err := movebuf.New[Move](MaxMovesPerPiece)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMemoryFailure, err)
	}

	rule := movementRules[pc.Type()]
	var pushErr error
	rule.candidates(g, row, col, func(dstRow, dstCol int) {
		if pushErr != nil || !onBoard(dstRow, dstCol) {
			return
		}
		m := NewMove(row, col, dstRow, dstCol)
		m.SrcPiece = pc
		if g.legalRegularMove(&m) {
			pushErr = pushCandidate(buf, m, forSearch)
		}
	})
	if pushErr != nil {
		return nil, pushErr
	}

	if sorted && buf.Len() > 1 {
		buf.SortStable(func(a, b Move) bool {
			if a.DstRow != b.DstRow {
				return a.DstRow < b.DstRow
			}
			return a.DstCol < b.DstCol
		})
	}

	if rule.castles {
		if err := g.appendCastles(buf, row, col, pc); err != nil {
			return nil, err
		}
	}
	return buf.Items(), nil
}

func pushCandidate(buf *movebuf.Buffer[Move], m Move, forSearch bool) error {
	if !m.Promotion || !forSearch {
		return pushMove(buf, m)
	}
	color := m.SrcPiece.Color()
	for _, pt := range PromotionAll.Types() {
		promoted := m
		promoted.SrcPiece = NewPiece(color, pt)
		if err := pushMove(buf, promoted); err != nil {
			return err
		}
	}
	return nil
}

func pushMove(buf *movebuf.Buffer[Move], m Move) error {
	if err := buf.PushBack(m); err != nil {
		return fmt.Errorf("%w: %v", ErrMemoryFailure, err)
	}
	return nil
}

// appendCastles adds the castle moves available to a king (left rook first)
// or to a rook on its home corner.
func (g *Game) appendCastles(buf *movebuf.Buffer[Move], row, col int, pc Piece) error {
	var rookCols []int
	switch pc.Type() {
	case King:
		rookCols = []int{leftRookCol, rightRookCol}
	case Rook:
		rookCols = []int{col}
	}
	for _, rookCol := range rookCols {
		m := NewCastleMove(pc.Color().FirstRow(), rookCol)
		if pc.Is(Rook) && row != m.SrcRow {
			continue
		}
		m.SrcPiece = g.board[m.SrcRow][m.SrcCol]
		if !g.legalCastle(&m) {
			continue
		}
		if err := pushMove(buf, m); err != nil {
			return err
		}
	}
	return nil
}

// GenerateMoves lists the sorted legal moves of the side-to-move piece on
// (row, col), promotions not expanded.
func (g *Game) GenerateMoves(row, col int) ([]Move, error) {
	if !onBoard(row, col) {
		return nil, ErrInvalidPosition
	}
	if !g.board[row][col].Belongs(g.turn) {
		return nil, fmt.Errorf("%w: no %s piece at %d,%d", ErrInvalidArgument, g.turn, row, col)
	}
	return g.PieceMoves(row, col, true, false)
}

// Targets returns the destination squares of GenerateMoves. Castle moves
// contribute the king's landing square.
func (g *Game) Targets(row, col int) (Bitboard, error) {
	moves, err := g.GenerateMoves(row, col)
	if err != nil {
		return 0, err
	}
	var bb Bitboard
	for _, m := range moves {
		dstRow, dstCol := m.DstRow, m.DstCol
		if m.Castle {
			dstCol = castleKingCol(m.SrcCol)
		}
		if sq, ok := SquareFromCoords(dstRow, dstCol); ok {
			bb = bb.Add(sq)
		}
	}
	return bb, nil
}

// LegalMoves lists every legal move of the side to move, scanning the board
// row by row, each piece's moves sorted with promotions expanded. Castle moves
// are listed once, from the king.
func (g *Game) LegalMoves() ([]Move, error) {
	var out []Move
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pc := g.board[row][col]
			if !pc.Belongs(g.turn) {
				continue
			}
			moves, err := g.PieceMoves(row, col, true, true)
			if err != nil {
				return nil, err
			}
			for _, m := range moves {
				if m.Castle && pc.Is(Rook) {
					continue
				}
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func castleKingCol(rookCol int) int {
	if rookCol == leftRookCol {
		return KingCol - 2
	}
	return KingCol + 2
}

func castleRookCol(rookCol int) int {
	if rookCol == leftRookCol {
		return KingCol - 1
	}
	return KingCol + 1
}
