package game

import (
	"fmt"
	"strings"
)

const (
	BoardSize = 8
	KingCol   = 4

	leftRookCol  = 0
	rightRookCol = BoardSize - 1
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Index() int { return int(c) }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// FirstRow is the rank holding the color's king and rooks at the start.
func (c Color) FirstRow() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// LastRow is the promotion rank for the color's pawns.
func (c Color) LastRow() int { return c.Opposite().FirstRow() }

func (c Color) pawnRow() int {
	if c == White {
		return 1
	}
	return BoardSize - 2
}

func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return 0, false
	}
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", string(text))
	}
	*c = parsed
	return nil
}

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("piece(%d)", p)
	}
}

// Piece is the content of a single cell: Empty or a colored piece.
type Piece uint8

const (
	Empty Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

const (
	EmptySymbol = '_'

	// Symbols are indexed by Piece. White is lowercase, Black uppercase.
	pieceSymbols = "_mnbrqkMNBRQK"
)

func NewPiece(c Color, t PieceType) Piece {
	return Piece(1 + c.Index()*6 + int(t))
}

func (p Piece) IsEmpty() bool { return p == Empty }

// Color is meaningless for Empty.
func (p Piece) Color() Color {
	if p >= BlackPawn {
		return Black
	}
	return White
}

// Type is meaningless for Empty.
func (p Piece) Type() PieceType {
	if p == Empty {
		return 0
	}
	return PieceType((p - 1) % 6)
}

// Belongs reports whether p is a piece of color c.
func (p Piece) Belongs(c Color) bool { return p != Empty && p.Color() == c }

func (p Piece) Is(t PieceType) bool { return p != Empty && p.Type() == t }

func (p Piece) Symbol() byte {
	if int(p) >= len(pieceSymbols) {
		return '?'
	}
	return pieceSymbols[p]
}

func (p Piece) String() string {
	if p == Empty {
		return "empty"
	}
	return p.Color().String() + " " + p.Type().String()
}

func PieceFromSymbol(b byte) (Piece, bool) {
	idx := strings.IndexByte(pieceSymbols, b)
	if idx < 0 {
		return Empty, false
	}
	return Piece(idx), true
}

// Grid is a full board, indexed [row][col] with row 0 as White's first rank.
type Grid [BoardSize][BoardSize]Piece

func onBoard(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

type Square uint8

func (s Square) Rank() int { return int(s) >> 3 }
func (s Square) File() int { return int(s) & 7 }

func (s Square) String() string {
	file := byte('a' + s.File())
	rank := byte('1' + s.Rank())
	return string([]byte{file, rank})
}

func CoordToSquare(coord string) (Square, bool) {
	if len(coord) != 2 {
		return 0, false
	}
	file := coord[0]
	rank := coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	r := int(rank - '1')
	c := int(file - 'a')
	return Square(r*8 + c), true
}

func SquareFromCoords(rank, file int) (Square, bool) {
	if !onBoard(rank, file) {
		return 0, false
	}
	return Square(rank*8 + file), true
}

// Line returns the squares strictly between from and to when they share a
// rank, file or diagonal, and nil otherwise.
func Line(from, to Square) []Square {
	dr := to.Rank() - from.Rank()
	df := to.File() - from.File()
	stepR := normalize(dr)
	stepF := normalize(df)

	aligned := false
	switch {
	case dr == 0 && df != 0:
		aligned = true
	case df == 0 && dr != 0:
		aligned = true
	case abs(dr) == abs(df) && dr != 0:
		aligned = true
	}

	if !aligned {
		return nil
	}

	distance := max(abs(dr), abs(df)) - 1
	if distance <= 0 {
		return nil
	}

	squares := make([]Square, 0, distance)
	rank := from.Rank()
	file := from.File()
	for i := 0; i < distance; i++ {
		rank += stepR
		file += stepF
		sq, ok := SquareFromCoords(rank, file)
		if !ok {
			return nil
		}
		squares = append(squares, sq)
	}
	return squares
}

type CastlingRights uint8

const (
	CastlingNone          CastlingRights = 0
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside
	CastlingAll = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

// CastlingSide names the rook taking part: queenside is the left rook on
// column 0, kingside the right rook on column 7.
type CastlingSide uint8

const (
	CastleKingside CastlingSide = iota
	CastleQueenside
)

func (cs CastlingSide) String() string {
	switch cs {
	case CastleKingside:
		return "kingside"
	case CastleQueenside:
		return "queenside"
	default:
		return "?"
	}
}

// RookCol is the home column of the side's rook.
func (cs CastlingSide) RookCol() int {
	if cs == CastleQueenside {
		return leftRookCol
	}
	return rightRookCol
}

func sideOfRookCol(col int) (CastlingSide, bool) {
	switch col {
	case leftRookCol:
		return CastleQueenside, true
	case rightRookCol:
		return CastleKingside, true
	default:
		return 0, false
	}
}

func CastlingRight(color Color, side CastlingSide) CastlingRights {
	switch color {
	case White:
		if side == CastleQueenside {
			return CastlingWhiteQueenside
		}
		return CastlingWhiteKingside
	case Black:
		if side == CastleQueenside {
			return CastlingBlackQueenside
		}
		return CastlingBlackKingside
	default:
		return CastlingNone
	}
}

func CastlingRightsForColor(color Color) CastlingRights {
	switch color {
	case White:
		return CastlingWhiteKingside | CastlingWhiteQueenside
	case Black:
		return CastlingBlackKingside | CastlingBlackQueenside
	default:
		return CastlingNone
	}
}

func (cr CastlingRights) Has(right CastlingRights) bool { return cr&right != 0 }

func (cr CastlingRights) HasSide(color Color, side CastlingSide) bool {
	return cr.Has(CastlingRight(color, side))
}

func (cr CastlingRights) With(right CastlingRights) CastlingRights { return cr | right }

func (cr CastlingRights) Without(right CastlingRights) CastlingRights { return cr &^ right }

func (cr CastlingRights) WithoutColor(color Color) CastlingRights {
	return cr.Without(CastlingRightsForColor(color))
}

func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var b strings.Builder
	if cr.Has(CastlingWhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackQueenside) {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func ParseCastlingRights(s string) (CastlingRights, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" {
		return CastlingNone, nil
	}
	var rights CastlingRights
	for _, r := range trimmed {
		switch r {
		case 'K':
			rights |= CastlingWhiteKingside
		case 'Q':
			rights |= CastlingWhiteQueenside
		case 'k':
			rights |= CastlingBlackKingside
		case 'q':
			rights |= CastlingBlackQueenside
		default:
			return CastlingNone, fmt.Errorf("invalid castling flag %q", string(r))
		}
	}
	return rights, nil
}

func (cr CastlingRights) MarshalText() ([]byte, error) { return []byte(cr.String()), nil }

func (cr *CastlingRights) UnmarshalText(text []byte) error {
	parsed, err := ParseCastlingRights(string(text))
	if err != nil {
		return err
	}
	*cr = parsed
	return nil
}

type PromotionChoices uint8

const (
	PromotionNone  PromotionChoices = 0
	PromoteToQueen PromotionChoices = 1 << iota
	PromoteToRook
	PromoteToBishop
	PromoteToKnight
	PromotionAll = PromoteToQueen | PromoteToRook | PromoteToBishop | PromoteToKnight
)

func (pc PromotionChoices) Contains(pt PieceType) bool {
	switch pt {
	case Queen:
		return pc&PromoteToQueen != 0
	case Rook:
		return pc&PromoteToRook != 0
	case Bishop:
		return pc&PromoteToBishop != 0
	case Knight:
		return pc&PromoteToKnight != 0
	default:
		return false
	}
}

// Types lists the choices in expansion order: queen, rook, bishop, knight.
func (pc PromotionChoices) Types() []PieceType {
	var out []PieceType
	for _, pt := range []PieceType{Queen, Rook, Bishop, Knight} {
		if pc.Contains(pt) {
			out = append(out, pt)
		}
	}
	return out
}

func ParsePromotionPiece(s string) (PieceType, bool) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	switch trimmed {
	case "q", "queen":
		return Queen, true
	case "r", "rook":
		return Rook, true
	case "b", "bishop":
		return Bishop, true
	case "n", "knight":
		return Knight, true
	default:
		return 0, false
	}
}

type Status uint8

const (
	StatusNoCheck Status = iota
	StatusCheck
	StatusWhiteWins
	StatusBlackWins
	StatusTied
	StatusFailure
)

var statusNames = [...]string{
	StatusNoCheck:   "no-check",
	StatusCheck:     "check",
	StatusWhiteWins: "white-wins",
	StatusBlackWins: "black-wins",
	StatusTied:      "tied",
	StatusFailure:   "failure",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", s)
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	return s == StatusWhiteWins || s == StatusBlackWins || s == StatusTied
}

func winFor(c Color) Status {
	if c == White {
		return StatusWhiteWins
	}
	return StatusBlackWins
}

func ParseStatus(s string) (Status, bool) {
	for i, name := range statusNames {
		if name == s {
			return Status(i), true
		}
	}
	return 0, false
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(text []byte) error {
	parsed, ok := ParseStatus(string(text))
	if !ok {
		return fmt.Errorf("invalid status %q", string(text))
	}
	*s = parsed
	return nil
}

// Army counts a side's pieces, kings excluded.
type Army struct {
	Pawns   int `json:"pawns"`
	Knights int `json:"knights"`
	Bishops int `json:"bishops"`
	Rooks   int `json:"rooks"`
	Queens  int `json:"queens"`
}

func startingArmy() Army {
	return Army{Pawns: 8, Knights: 2, Bishops: 2, Rooks: 2, Queens: 1}
}

func (a *Army) counter(t PieceType) *int {
	switch t {
	case Pawn:
		return &a.Pawns
	case Knight:
		return &a.Knights
	case Bishop:
		return &a.Bishops
	case Rook:
		return &a.Rooks
	case Queen:
		return &a.Queens
	default:
		return nil
	}
}

func (a *Army) add(t PieceType, n int) {
	if c := a.counter(t); c != nil {
		*c += n
	}
}

// Count returns the number of pieces of kind t; kings are not counted.
func (a Army) Count(t PieceType) int {
	if c := a.counter(t); c != nil {
		return *c
	}
	return 0
}

func normalize(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
