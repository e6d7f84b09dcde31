// Package notation converts between games and their text forms: FEN for whole
// positions and coordinate text for squares and moves.
package notation

import (
	"fmt"
	"strings"

	"minimax_chess/internal/game"
)

// SquareName returns the algebraic name of (row, col), e.g. "e4".
func SquareName(row, col int) string {
	sq, ok := game.SquareFromCoords(row, col)
	if !ok {
		return "??"
	}
	return sq.String()
}

// ParseSquare returns the row and column of an algebraic square name.
func ParseSquare(s string) (int, int, error) {
	sq, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrSquare, s)
	}
	return sq.Rank(), sq.File(), nil
}

// MoveString formats m as e2e4, e7e8q, O-O or O-O-O.
func MoveString(m game.Move) string {
	if m.Castle {
		return m.String()
	}
	s := SquareName(m.SrcRow, m.SrcCol) + SquareName(m.DstRow, m.DstCol)
	if m.Promotion && !m.SrcPiece.IsEmpty() && !m.SrcPiece.Is(game.Pawn) {
		s += strings.ToLower(m.SrcPiece.Type().String())
	}
	return s
}

// ParseMove reads move text for the side turn. A trailing piece letter makes
// the move a promotion to that piece.
func ParseMove(s string, turn game.Color) (game.Move, error) {
	text := strings.TrimSpace(s)
	switch strings.ToUpper(strings.ReplaceAll(text, "0", "O")) {
	case "O-O":
		return game.NewCastleMove(turn.FirstRow(), game.CastleKingside.RookCol()), nil
	case "O-O-O":
		return game.NewCastleMove(turn.FirstRow(), game.CastleQueenside.RookCol()), nil
	}
	text = strings.ToLower(text)
	if len(text) != 4 && len(text) != 5 {
		return game.Move{}, fmt.Errorf("%w: %q", ErrMove, s)
	}
	sr, sc, err := ParseSquare(text[:2])
	if err != nil {
		return game.Move{}, fmt.Errorf("%w: %q: %v", ErrMove, s, err)
	}
	dr, dc, err := ParseSquare(text[2:4])
	if err != nil {
		return game.Move{}, fmt.Errorf("%w: %q: %v", ErrMove, s, err)
	}
	if len(text) == 4 {
		return game.NewMove(sr, sc, dr, dc), nil
	}
	pt, ok := game.ParsePromotionPiece(text[4:])
	if !ok {
		return game.Move{}, fmt.Errorf("%w: %q: bad promotion piece", ErrMove, s)
	}
	return game.NewPromotion(sr, sc, dr, dc, game.NewPiece(turn, pt)), nil
}
