package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrIllegalMove      = errors.New("illegal move")
	ErrIllegalCastle    = errors.New("illegal castle move")
	ErrCastleNoRook     = errors.New("castle move without a rook at the source square")
	ErrMemoryFailure    = errors.New("move buffer failure")
	ErrPromotionPending = errors.New("pawn promotion pending")
	ErrInvalidBoard     = errors.New("invalid board")

	ErrEmptyHistory = fmt.Errorf("%w: move history is empty", ErrInvalidArgument)
)
