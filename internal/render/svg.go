package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"minimax_chess/internal/game"
)

const (
	squareSize = 60
	margin     = 20
	boardSide  = squareSize * game.BoardSize

	lightSquare = "fill:#f0d9b5"
	darkSquare  = "fill:#b58863"
	markSquare  = "fill:#7fc97f;fill-opacity:0.6"
	labelStyle  = "font-family:sans-serif;font-size:12px;fill:#333;text-anchor:middle"
	pieceStyle  = "font-family:serif;font-size:44px;text-anchor:middle;dominant-baseline:central"
)

var glyphs = map[game.PieceType][2]string{
	game.King:   {"♔", "♚"},
	game.Queen:  {"♕", "♛"},
	game.Rook:   {"♖", "♜"},
	game.Bishop: {"♗", "♝"},
	game.Knight: {"♘", "♞"},
	game.Pawn:   {"♙", "♟"},
}

// SVG draws the board from White's side. Squares in marks are shaded, as for
// the destinations of a selected piece.
func SVG(w io.Writer, g *game.Game, marks game.Bitboard) {
	canvas := svg.New(w)
	canvas.Start(boardSide+2*margin, boardSide+2*margin)
	for row := 0; row < game.BoardSize; row++ {
		for col := 0; col < game.BoardSize; col++ {
			x, y := squareOrigin(row, col)
			style := darkSquare
			if (row+col)%2 == 1 {
				style = lightSquare
			}
			canvas.Rect(x, y, squareSize, squareSize, style)
			if sq, ok := game.SquareFromCoords(row, col); ok && marks.Has(sq) {
				canvas.Rect(x, y, squareSize, squareSize, markSquare)
			}
			pc := g.Piece(row, col)
			if pc.IsEmpty() {
				continue
			}
			canvas.Text(x+squareSize/2, y+squareSize/2, glyphs[pc.Type()][pc.Color().Index()], pieceStyle)
		}
	}
	for i := 0; i < game.BoardSize; i++ {
		file := string(rune('a' + i))
		canvas.Text(margin+i*squareSize+squareSize/2, boardSide+margin+14, file, labelStyle)
		_, y := squareOrigin(i, 0)
		canvas.Text(margin/2, y+squareSize/2+4, fmt.Sprint(i+1), labelStyle)
	}
	canvas.End()
}

func squareOrigin(row, col int) (int, int) {
	return margin + col*squareSize, margin + (game.BoardSize-1-row)*squareSize
}
