package notation

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"minimax_chess/internal/game"
)

var (
	toChessType = map[game.PieceType]chess.PieceType{
		game.Pawn:   chess.Pawn,
		game.Knight: chess.Knight,
		game.Bishop: chess.Bishop,
		game.Rook:   chess.Rook,
		game.Queen:  chess.Queen,
		game.King:   chess.King,
	}
	fromChessType = map[chess.PieceType]game.PieceType{
		chess.Pawn:   game.Pawn,
		chess.Knight: game.Knight,
		chess.Bishop: game.Bishop,
		chess.Rook:   game.Rook,
		chess.Queen:  game.Queen,
		chess.King:   game.King,
	}
)

func toChessColor(c game.Color) chess.Color {
	if c == game.White {
		return chess.White
	}
	return chess.Black
}

func fromChessColor(c chess.Color) game.Color {
	if c == chess.Black {
		return game.Black
	}
	return game.White
}

// ParseFEN builds a game from a FEN record. The en passant field and move
// clocks are read but not used.
func ParseFEN(fen string, historySize int) (*game.Game, error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFEN, err)
	}
	pos := chess.NewGame(opt).Position()

	var grid game.Grid
	for sq, pc := range pos.Board().SquareMap() {
		pt, ok := fromChessType[pc.Type()]
		if !ok {
			continue
		}
		grid[int(sq.Rank())][int(sq.File())] = game.NewPiece(fromChessColor(pc.Color()), pt)
	}

	rights := game.CastlingNone
	cr := pos.CastleRights()
	for _, c := range []game.Color{game.White, game.Black} {
		if cr.CanCastle(toChessColor(c), chess.KingSide) {
			rights = rights.With(game.CastlingRight(c, game.CastleKingside))
		}
		if cr.CanCastle(toChessColor(c), chess.QueenSide) {
			rights = rights.With(game.CastlingRight(c, game.CastleQueenside))
		}
	}

	g, err := game.NewFromBoard(grid, fromChessColor(pos.Turn()), rights, historySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFEN, err)
	}
	return g, nil
}

// FEN formats the position of g. En passant is always "-" and the clocks
// start over.
func FEN(g *game.Game) string {
	return fmt.Sprintf("%s %s %s - 0 1", chessBoard(g).String(), turnLetter(g.Turn()), g.Castling())
}

func chessBoard(g *game.Game) *chess.Board {
	squares := make(map[chess.Square]chess.Piece)
	board := g.Board()
	for row := range board {
		for col, pc := range board[row] {
			if pc.IsEmpty() {
				continue
			}
			sq := chess.NewSquare(chess.File(col), chess.Rank(row))
			squares[sq] = chess.NewPiece(toChessType[pc.Type()], toChessColor(pc.Color()))
		}
	}
	return chess.NewBoard(squares)
}

func turnLetter(c game.Color) string {
	if c == game.White {
		return "w"
	}
	return "b"
}

// ChessGame returns g as a github.com/notnil/chess game, for cross-checking
// and notation the local engine does not produce.
func ChessGame(g *game.Game) (*chess.Game, error) {
	opt, err := chess.FEN(FEN(g))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFEN, err)
	}
	return chess.NewGame(opt), nil
}

// Algebraic returns standard algebraic notation (e.g. "Nf3", "exd5", "O-O")
// for m played in g. m must be legal for the side to move.
func Algebraic(g *game.Game, m game.Move) (string, error) {
	cg, err := ChessGame(g)
	if err != nil {
		return "", err
	}
	from, to := kingMoveSquares(g, m)
	var promo chess.PieceType
	if m.Promotion && !m.SrcPiece.IsEmpty() && !m.SrcPiece.Is(game.Pawn) {
		promo = toChessType[m.SrcPiece.Type()]
	}
	pos := cg.Position()
	for _, mv := range cg.ValidMoves() {
		if mv.S1() == from && mv.S2() == to && mv.Promo() == promo {
			return chess.AlgebraicNotation{}.Encode(pos, mv), nil
		}
	}
	return "", fmt.Errorf("%w: %s is not legal here", ErrMove, MoveString(m))
}

// kingMoveSquares maps m to from/to squares, castles written as king moves.
func kingMoveSquares(g *game.Game, m game.Move) (chess.Square, chess.Square) {
	if !m.Castle {
		return chess.NewSquare(chess.File(m.SrcCol), chess.Rank(m.SrcRow)),
			chess.NewSquare(chess.File(m.DstCol), chess.Rank(m.DstRow))
	}
	kingRow, kingCol := g.King(g.Turn())
	return chess.NewSquare(chess.File(kingCol), chess.Rank(kingRow)),
		chess.NewSquare(chess.File(castleKingCol(m)), chess.Rank(kingRow))
}

func castleKingCol(m game.Move) int {
	if side, _ := m.Side(); side == game.CastleQueenside {
		return game.KingCol - 2
	}
	return game.KingCol + 2
}

// Destination names the square m lands on, the king's square for castles.
func Destination(g *game.Game, m game.Move) string {
	if !m.Castle {
		return SquareName(m.DstRow, m.DstCol)
	}
	kingRow, _ := g.King(g.Turn())
	return SquareName(kingRow, castleKingCol(m))
}
