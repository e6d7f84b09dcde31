package game

import "fmt"

// Move describes one ply. Castle moves name the rook as their source; the
// destination is filled in with the rook's new square once applied.
type Move struct {
	SrcRow int `json:"srcRow"`
	SrcCol int `json:"srcCol"`
	DstRow int `json:"dstRow"`
	DstCol int `json:"dstCol"`

	// SrcPiece is the moving piece, or the promoted piece for promotions.
	SrcPiece Piece `json:"srcPiece"`
	// DstPiece is what occupied the destination before the move.
	DstPiece Piece `json:"dstPiece"`

	Castle    bool `json:"castle"`
	Promotion bool `json:"promotion"`

	// Captured and Threatened annotate the move for move hints.
	Captured   bool `json:"captured"`
	Threatened bool `json:"threatened"`

	// Castling holds the rights in force before the move.
	Castling CastlingRights `json:"castling"`
}

// NewMove builds a regular move from (srcRow, srcCol) to (dstRow, dstCol).
func NewMove(srcRow, srcCol, dstRow, dstCol int) Move {
	return Move{SrcRow: srcRow, SrcCol: srcCol, DstRow: dstRow, DstCol: dstCol}
}

// NewCastleMove builds a castle move with the rook at (rookRow, rookCol).
func NewCastleMove(rookRow, rookCol int) Move {
	return Move{SrcRow: rookRow, SrcCol: rookCol, DstRow: rookRow, DstCol: rookCol, Castle: true}
}

// NewPromotion builds a promotion move whose pawn becomes piece.
func NewPromotion(srcRow, srcCol, dstRow, dstCol int, piece Piece) Move {
	m := NewMove(srcRow, srcCol, dstRow, dstCol)
	m.SrcPiece = piece
	m.Promotion = true
	return m
}

func (m Move) From() Square {
	sq, _ := SquareFromCoords(m.SrcRow, m.SrcCol)
	return sq
}

func (m Move) To() Square {
	sq, _ := SquareFromCoords(m.DstRow, m.DstCol)
	return sq
}

// Side reports which rook a castle move uses.
func (m Move) Side() (CastlingSide, bool) {
	if !m.Castle {
		return 0, false
	}
	return sideOfRookCol(m.SrcCol)
}

// Same reports whether two moves describe the same ply request.
func (m Move) Same(o Move) bool {
	if m.Castle || o.Castle {
		return m.Castle == o.Castle && m.SrcRow == o.SrcRow && m.SrcCol == o.SrcCol
	}
	if m.SrcRow != o.SrcRow || m.SrcCol != o.SrcCol || m.DstRow != o.DstRow || m.DstCol != o.DstCol {
		return false
	}
	if m.Promotion && o.Promotion {
		return m.SrcPiece == o.SrcPiece
	}
	return true
}

func (m Move) String() string {
	if m.Castle {
		if side, ok := m.Side(); ok && side == CastleQueenside {
			return "O-O-O"
		}
		return "O-O"
	}
	s := fmt.Sprintf("%s%s", m.From(), m.To())
	if m.Promotion && !m.SrcPiece.IsEmpty() {
		s += m.SrcPiece.Type().String()
	}
	return s
}
