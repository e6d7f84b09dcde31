package notation

import "errors"

var (
	ErrSquare = errors.New("invalid square")
	ErrMove   = errors.New("invalid move text")
	ErrFEN    = errors.New("invalid fen")
)
