// Package quotes picks motivational quotes for habits.
package quotes

import (
	"math/rand/v2"
)

const Fallback = "Keep going!"

var builtin = []string{
	"Small steps every day lead to big changes every year.",
	"You don't have to be great to get started, but you have to get started to be great.",
	"Success is the sum of small efforts repeated day in and day out.",
	"The secret of getting ahead is getting started.",
	"Don't watch the clock; do what it does. Keep going.",
	"Progress, not perfection.",
	"Every expert was once a beginner.",
	"The best time to plant a tree was 20 years ago. The second best time is now.",
	"Consistency is the mother of mastery.",
	"Your future self will thank you for the habits you build today.",
}

// Picker returns one quote per call.
type Picker interface {
	Pick() string
}

// All returns a copy of the built-in quotes.
func All() []string {
	out := make([]string, len(builtin))
	copy(out, builtin)
	return out
}

// Random picks uniformly from a fixed list.
type Random struct {
	quotes []string
	rng    *rand.Rand
}

// NewRandom returns a picker over the built-in list. A nil rng uses the
// global source.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{quotes: builtin, rng: rng}
}

// NewRandomFrom picks from a caller-supplied list.
func NewRandomFrom(quotes []string, rng *rand.Rand) *Random {
	return &Random{quotes: quotes, rng: rng}
}

func (r *Random) Pick() string {
	if len(r.quotes) == 0 {
		return Fallback
	}
	if r.rng == nil {
		return r.quotes[rand.IntN(len(r.quotes))]
	}
	return r.quotes[r.rng.IntN(len(r.quotes))]
}

// Fixed always returns the same quote.
type Fixed string

func (f Fixed) Pick() string { return string(f) }
