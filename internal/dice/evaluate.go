package dice

import (
	"fmt"
	"sort"
)

// Limits bounds the work a roll or simulation may do. A zero field disables
// that bound.
type Limits struct {
	MaxDice       int // dice rolled for one term before explosions
	MaxSides      int
	MaxExplosions int // bonus dice appended to one original die
	MaxTotalDice  int // dice rolled by one expression, explosions included
	MaxSimDice    int // dice rolled by one simulation across all iterations
}

// DefaultLimits are the bounds used when the caller has no configuration.
var DefaultLimits = Limits{
	MaxDice:       1000,
	MaxSides:      1000000,
	MaxExplosions: 1000,
	MaxTotalDice:  10000,
	MaxSimDice:    1000000,
}

// Validate reports whether term can be rolled within limits.
//
// Postcondition: Returns nil or an *InvalidDiceSpecError.
func (l Limits) Validate(term Term) error {
	switch {
	case term.Count < 1:
		return &InvalidDiceSpecError{Term: term.Text, Reason: "must roll at least one die"}
	case term.Sides < 1:
		return &InvalidDiceSpecError{Term: term.Text, Reason: "dice must have at least one side"}
	case term.KeepDrop.Active() && term.KeepDrop.Count < 1:
		return &InvalidDiceSpecError{Term: term.Text, Reason: "keep/drop count must be at least 1"}
	case l.MaxDice > 0 && term.Count > l.MaxDice:
		return &InvalidDiceSpecError{Term: term.Text, Reason: fmt.Sprintf("at most %d dice may be rolled at once", l.MaxDice)}
	case l.MaxSides > 0 && term.Sides > l.MaxSides:
		return &InvalidDiceSpecError{Term: term.Text, Reason: fmt.Sprintf("dice may have at most %d sides", l.MaxSides)}
	}
	return nil
}

// Evaluate rolls term and returns its dice in display order.
//
// Exploding terms append bonus dice after each original die for as long as the
// newest die of that chain is a critical hit. Keep/drop then stably sorts the
// dice by value; among equal values the die rolled first sorts first. Keep N
// drops everything below the N highest, drop N drops the N highest. The result
// of a keep/drop term lists the dropped dice first, then the kept dice, each in
// ascending order. Without keep/drop the dice stay in roll order.
//
// Precondition: src must be non-nil.
// Postcondition: Returns the dice or an *InvalidDiceSpecError /
// *ExplosionLimitExceededError; no dice are returned on error.
func Evaluate(term Term, src Source, limits Limits) ([]Die, error) {
	if err := limits.Validate(term); err != nil {
		return nil, err
	}

	rolled := make([]Die, 0, term.Count)
	for range term.Count {
		rolled = append(rolled, NewDie(term.Sides, src))
	}

	if term.Exploding {
		chained := make([]Die, 0, len(rolled))
		for _, d := range rolled {
			chained = append(chained, d)
			bonus := 0
			for chained[len(chained)-1].CriticalHit() {
				if limits.MaxExplosions > 0 && bonus >= limits.MaxExplosions {
					return nil, &ExplosionLimitExceededError{Term: term.Text, Limit: limits.MaxExplosions}
				}
				if limits.MaxTotalDice > 0 && len(chained) >= limits.MaxTotalDice {
					return nil, totalDiceError(term.Text, limits.MaxTotalDice)
				}
				chained = append(chained, newExplodedDie(term.Sides, src))
				bonus++
			}
		}
		rolled = chained
	}

	if !term.KeepDrop.Active() {
		return rolled, nil
	}
	return selectDice(rolled, term.KeepDrop), nil
}

func totalDiceError(term string, limit int) *InvalidDiceSpecError {
	return &InvalidDiceSpecError{Term: term, Reason: fmt.Sprintf("at most %d dice may be rolled in one expression", limit)}
}

func selectDice(rolled []Die, kd KeepDrop) []Die {
	sorted := make([]Die, len(rolled))
	copy(sorted, rolled)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].value < sorted[j].value })

	n := min(kd.Count, len(sorted))
	var dropped, kept []Die
	switch kd.Mode {
	case SelectKeep:
		dropped, kept = sorted[:len(sorted)-n], sorted[len(sorted)-n:]
	case SelectDrop:
		kept, dropped = sorted[:len(sorted)-n], sorted[len(sorted)-n:]
	}

	out := make([]Die, 0, len(sorted))
	for _, d := range dropped {
		d.dropped = true
		out = append(out, d)
	}
	return append(out, kept...)
}
