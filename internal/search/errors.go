package search

import "errors"

var (
	ErrDifficulty = errors.New("difficulty out of range")
	ErrNoMoves    = errors.New("no moves to search")
)
