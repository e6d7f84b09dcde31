// Package render draws read-only views of a game: a console board and an SVG
// image.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"minimax_chess/internal/game"
)

// TextPrinter writes the console board, rank 8 on top:
//
//	8| R N B Q K B N R |
//	...
//	  -----------------
//	   A B C D E F G H
type TextPrinter struct {
	white *color.Color
	black *color.Color
	frame *color.Color
}

// NewTextPrinter returns a printer; colored adds terminal colors per side.
func NewTextPrinter(colored bool) *TextPrinter {
	p := &TextPrinter{
		white: color.New(color.FgHiWhite, color.Bold),
		black: color.New(color.FgHiRed, color.Bold),
		frame: color.New(color.FgCyan),
	}
	if !colored {
		p.white.DisableColor()
		p.black.DisableColor()
		p.frame.DisableColor()
	}
	return p
}

func (p *TextPrinter) Print(w io.Writer, g *game.Game) error {
	bw := bufio.NewWriter(w)
	symbols := g.Symbols()
	for row := game.BoardSize - 1; row >= 0; row-- {
		fmt.Fprint(bw, p.frame.Sprintf("%d|", row+1))
		for col := 0; col < game.BoardSize; col++ {
			fmt.Fprint(bw, " ", p.cell(g.Piece(row, col), symbols[row][col]))
		}
		fmt.Fprintln(bw, p.frame.Sprint(" |"))
	}
	fmt.Fprintln(bw, "  "+p.frame.Sprint(strings.Repeat("-", 2*game.BoardSize+1)))
	fmt.Fprint(bw, "  ")
	for col := 0; col < game.BoardSize; col++ {
		fmt.Fprintf(bw, " %c", 'A'+col)
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}

func (p *TextPrinter) cell(pc game.Piece, symbol byte) string {
	switch {
	case pc.IsEmpty():
		return string(symbol)
	case pc.Color() == game.White:
		return p.white.Sprint(string(symbol))
	default:
		return p.black.Sprint(string(symbol))
	}
}

// Text returns the uncolored console board.
func Text(g *game.Game) string {
	var sb strings.Builder
	_ = NewTextPrinter(false).Print(&sb, g)
	return sb.String()
}
