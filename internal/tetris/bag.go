package tetris

import (
	"math/rand"
)

// Bag is a 7-bag randomizer: an ordered queue of upcoming pieces that is
// refilled with a shuffled permutation of all seven types whenever it runs
// dry.
type Bag struct {
	rng    *rand.Rand
	queue  []PieceType
	refill func([]PieceType)
}

// NewBag creates a filled bag drawing its shuffles from rng.
func NewBag(rng *rand.Rand) *Bag {
	bag := &Bag{rng: rng}
	bag.Reset()
	return bag
}

// Reset discards the queue and deals a fresh permutation.
func (bag *Bag) Reset() {
	bag.queue = bag.queue[:0]
	bag.fill()
}

func (bag *Bag) fill() {
	for _, i := range bag.rng.Perm(len(PieceTypes)) {
		bag.queue = append(bag.queue, PieceTypes[i])
	}
	if bag.refill != nil {
		bag.refill(bag.queue)
	}
}

// Next pops the front of the queue. The queue never stays empty, so Peek is
// always valid afterwards.
func (bag *Bag) Next() PieceType {
	t := bag.queue[0]
	bag.queue = bag.queue[1:]
	if len(bag.queue) == 0 {
		bag.fill()
	}
	return t
}

// Peek returns the piece Next will return.
func (bag *Bag) Peek() PieceType {
	return bag.queue[0]
}

// Upcoming returns a copy of the queued pieces.
func (bag *Bag) Upcoming() []PieceType {
	return append([]PieceType(nil), bag.queue...)
}
