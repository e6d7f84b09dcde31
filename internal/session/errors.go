package session

import "errors"

var (
	ErrSettings         = errors.New("invalid settings")
	ErrNotFound         = errors.New("session not found")
	ErrGameOver         = errors.New("game is over")
	ErrNotYourTurn      = errors.New("not the human player's turn")
	ErrUndoUnavailable  = errors.New("undo is not available")
	ErrHintsUnavailable = errors.New("move hints are only available in one-player mode at difficulty 1 or 2")
	ErrBroken           = errors.New("session aborted after an internal failure")
)
