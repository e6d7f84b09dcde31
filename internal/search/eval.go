package search

import (
	"math"

	"minimax_chess/internal/game"
)

const (
	MaxScore = math.MaxInt
	MinScore = math.MinInt
	TieScore = 0
)

// Evaluator scores a position from the point of view of side.
type Evaluator interface {
	Evaluate(g *game.Game, side game.Color) int
}

// Material scores a position by piece count: pawn 1, knight 3, bishop 3,
// rook 5, queen 9. Finished games score MaxScore, MinScore or TieScore.
type Material struct{}

var materialWeights = [...]int{
	game.Pawn:   1,
	game.Knight: 3,
	game.Bishop: 3,
	game.Rook:   5,
	game.Queen:  9,
}

func (Material) Evaluate(g *game.Game, side game.Color) int {
	switch g.Status() {
	case game.StatusWhiteWins:
		if side == game.White {
			return MaxScore
		}
		return MinScore
	case game.StatusBlackWins:
		if side == game.Black {
			return MaxScore
		}
		return MinScore
	case game.StatusTied:
		return TieScore
	}
	return armyValue(g.Army(side)) - armyValue(g.Army(side.Opposite()))
}

func armyValue(a game.Army) int {
	total := 0
	for pt, w := range materialWeights {
		total += a.Count(game.PieceType(pt)) * w
	}
	return total
}
