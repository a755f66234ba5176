// Package dice provides the randomness abstraction shared by the treasure
// resolver, the item assembler and the table pickers.
package dice

import "fmt"

// Source is the randomness provider for every draw made during a fight.
//
// A Source carries mutable state; callers on one logical thread share it
// without locking.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// Between returns a uniformly distributed int in [lo, hi] using exactly one
// draw from src.
//
// Precondition: lo <= hi; src must be non-nil.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("dice: Between called with lo %d > hi %d", lo, hi))
	}
	return lo + src.Intn(hi-lo+1)
}

// Chance flips a fair coin using exactly one draw from src.
//
// Postcondition: returns true iff the draw from Intn(2) is 1.
func Chance(src Source) bool {
	return src.Intn(2) == 1
}
