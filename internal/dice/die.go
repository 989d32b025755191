// Package dice implements the dice-notation engine behind the roll commands:
// term grammar, die rolling with explode and keep/drop modifiers, and the
// display/arithmetic rendering of a roll expression.
package dice

import "strconv"

// Die is a single rolled die.
//
// Invariant: 1 <= Value() <= Sides(); the value never changes after NewDie.
type Die struct {
	sides    int
	value    int
	exploded bool
	dropped  bool
}

// NewDie rolls a die with the given number of sides using src.
//
// Precondition: sides >= 1; src must be non-nil.
// Postcondition: Value() is uniformly distributed in [1, sides].
func NewDie(sides int, src Source) Die {
	return Die{sides: sides, value: src.Intn(sides) + 1}
}

func newExplodedDie(sides int, src Source) Die {
	d := NewDie(sides, src)
	d.exploded = true
	return d
}

// Sides returns the number of faces on the die.
func (d Die) Sides() int { return d.sides }

// Value returns the rolled face, whether or not the die was kept.
func (d Die) Value() int { return d.value }

// Exploded reports whether the die is a bonus roll from an exploding chain.
func (d Die) Exploded() bool { return d.exploded }

// Kept reports whether the die counts toward the total.
func (d Die) Kept() bool { return !d.dropped }

// Score is the die's contribution to a total: its value when kept, 0 when dropped.
func (d Die) Score() int {
	if d.dropped {
		return 0
	}
	return d.value
}

// CriticalHit reports whether the die rolled its highest face.
func (d Die) CriticalHit() bool { return d.value == d.sides }

// CriticalFail reports whether the die rolled a 1.
func (d Die) CriticalFail() bool { return d.value == 1 }

// String renders the die with chat markup: **bold** for criticals,
// __underline__ for exploded dice and ~~strikethrough~~ for dropped dice,
// nested in that order.
func (d Die) String() string {
	s := strconv.Itoa(d.value)
	if d.CriticalHit() || d.CriticalFail() {
		s = "**" + s + "**"
	}
	if d.exploded {
		s = "__" + s + "__"
	}
	if d.dropped {
		s = "~~" + s + "~~"
	}
	return s
}
