// Package search picks engine moves with a fixed-depth minimax search and
// alpha-beta pruning.
package search

import (
	"fmt"

	"minimax_chess/internal/game"
)

const (
	MinDifficulty     = 1
	MaxDifficulty     = 4
	DefaultDifficulty = 2
)

// Result is the outcome of a root search.
type Result struct {
	Move  game.Move
	Score int
	Nodes int
}

// Searcher explores the game tree to a fixed depth.
type Searcher struct {
	Depth     int
	Evaluator Evaluator
}

// New returns a material searcher for the given difficulty.
func New(depth int) (*Searcher, error) {
	if err := ValidDifficulty(depth); err != nil {
		return nil, err
	}
	return &Searcher{Depth: depth, Evaluator: Material{}}, nil
}

// ValidDifficulty reports whether depth is a playable difficulty level.
func ValidDifficulty(depth int) error {
	if depth < MinDifficulty || depth > MaxDifficulty {
		return fmt.Errorf("%w: %d not in %d..%d", ErrDifficulty, depth, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// ChooseMove returns the engine's move for the side to move in g. The live
// game is never modified.
func ChooseMove(g *game.Game, depth int) (game.Move, error) {
	res, err := Search(g, depth)
	if err != nil {
		return game.Move{}, err
	}
	return res.Move, nil
}

// Search runs a material search of the given depth on g.
func Search(g *game.Game, depth int) (Result, error) {
	s, err := New(depth)
	if err != nil {
		return Result{}, err
	}
	return s.Search(g)
}

// Search returns the best move for the side to move together with its score
// from that side's point of view.
func (s *Searcher) Search(g *game.Game) (Result, error) {
	if g == nil {
		return Result{}, game.ErrInvalidArgument
	}
	if err := ValidDifficulty(s.Depth); err != nil {
		return Result{}, err
	}
	if _, pending := g.PendingPromotion(); pending {
		return Result{}, game.ErrPromotionPending
	}
	if g.Status().Terminal() {
		return Result{}, fmt.Errorf("%w: game is over (%s)", ErrNoMoves, g.Status())
	}
	eval := s.Evaluator
	if eval == nil {
		eval = Material{}
	}

	n := &node{side: g.Turn(), maxDepth: s.Depth, eval: eval}
	score, err := n.alphaBeta(g.Copy(), 0, MinScore, MaxScore)
	if err != nil {
		return Result{}, err
	}
	if !n.chosen {
		return Result{}, ErrNoMoves
	}
	return Result{Move: n.best, Score: score, Nodes: n.nodes}, nil
}

type node struct {
	side     game.Color
	maxDepth int
	eval     Evaluator

	best   game.Move
	chosen bool
	nodes  int
}

// alphaBeta scores g searched depth plies below the root. Even depths
// maximize the root side's score.
func (n *node) alphaBeta(g *game.Game, depth, alpha, beta int) (int, error) {
	n.nodes++
	if depth > 0 && (g.Status().Terminal() || depth == n.maxDepth) {
		return n.eval.Evaluate(g, n.side), nil
	}

	moves, err := g.LegalMoves()
	if err != nil {
		return 0, err
	}
	maximizing := depth%2 == 0
	for _, m := range moves {
		child := g.Copy()
		played := m
		if err := child.ApplyMove(&played, true); err != nil {
			return 0, fmt.Errorf("apply %s: %w", m, err)
		}
		v, err := n.alphaBeta(child, depth+1, alpha, beta)
		if err != nil {
			return 0, err
		}
		if maximizing {
			if v > alpha || (depth == 0 && !n.chosen) {
				alpha = v
				if depth == 0 {
					n.best = m
					n.chosen = true
				}
			}
		} else if v < beta {
			beta = v
		}
		if alpha >= beta {
			break
		}
	}
	if maximizing {
		return alpha, nil
	}
	return beta, nil
}
