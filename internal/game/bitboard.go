package game

import "math/bits"

// Bitboard is a set of squares, bit i standing for Square(i).
type Bitboard uint64

func (b Bitboard) Empty() bool { return b == 0 }

func (b Bitboard) Has(s Square) bool { return b&(1<<s) != 0 }

func (b Bitboard) Add(s Square) Bitboard { return b | (1 << s) }

func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Squares lists the members in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for bb := uint64(b); bb != 0; bb &= bb - 1 {
		out = append(out, Square(bits.TrailingZeros64(bb)))
	}
	return out
}
