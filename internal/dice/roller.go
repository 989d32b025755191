package dice

import (
	"errors"
	"math"
	"strconv"

	"github.com/cory-johannsen/dbot/internal/arith"
)

// Result holds the full audit trail for one roll expression.
//
// Postcondition: Total == trunc(arith.Eval(Arithmetic)).
type Result struct {
	Input      string       // expression as typed, e.g. "2d8!+9"
	Display    string       // terms replaced by annotated dice, e.g. "[8+__3__]+9"
	Arithmetic string       // terms replaced by kept values, e.g. "(8+3)+9"
	Total      int          // evaluated Arithmetic, truncated toward zero
	Terms      []TermResult // one entry per term, in input order
}

// String returns the reply format "<display> = <total>".
func (r Result) String() string {
	return r.Display + " = " + strconv.Itoa(r.Total)
}

// DiceCount returns the number of dice rolled across all terms, including
// exploded and dropped dice.
func (r Result) DiceCount() int {
	n := 0
	for _, t := range r.Terms {
		n += len(t.Dice)
	}
	return n
}

// Roll evaluates a roll expression such as "3*(2d8!+9+1d6!k1)": every dice
// term is rolled with src, substituted back by offset, and the remaining
// arithmetic is evaluated.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a complete Result, or an error and no partial
// result. Arithmetic errors are *arith.SyntaxError values whose Offset
// points into input.
func Roll(input string, src Source, limits Limits) (Result, error) {
	terms, err := FindTerms(input)
	if err != nil {
		return Result{}, err
	}

	if limits.MaxTotalDice > 0 && countDice(terms) > limits.MaxTotalDice {
		return Result{}, totalDiceError(input, limits.MaxTotalDice)
	}

	results := make([]TermResult, 0, len(terms))
	rolledDice := 0
	for _, t := range terms {
		rolled, err := Evaluate(t, src, limits)
		if err != nil {
			return Result{}, err
		}
		rolledDice += len(rolled)
		if limits.MaxTotalDice > 0 && rolledDice > limits.MaxTotalDice {
			return Result{}, totalDiceError(input, limits.MaxTotalDice)
		}
		results = append(results, TermResult{Term: t, Dice: rolled})
	}

	asm := Assemble(input, results)
	v, err := arith.Eval(asm.Arithmetic)
	if err != nil {
		var se *arith.SyntaxError
		if errors.As(err, &se) {
			return Result{}, se.Rebase(input, asm.InputOffset(se.Offset))
		}
		return Result{}, err
	}

	total, ok := truncate(v)
	if !ok {
		return Result{}, &arith.SyntaxError{Input: input, Offset: 0, Msg: "result out of range"}
	}

	return Result{
		Input:      input,
		Display:    asm.Display,
		Arithmetic: asm.Arithmetic,
		Total:      total,
		Terms:      results,
	}, nil
}

// countDice returns the dice the terms roll before any explosions.
func countDice(terms []Term) int {
	n := 0
	for _, t := range terms {
		n += t.Count
	}
	return n
}

func truncate(v float64) (int, bool) {
	t := math.Trunc(v)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, false
	}
	return int(t), true
}
