package dice

import (
	"strconv"
	"strings"
)

// TermResult pairs a term with the dice it produced.
type TermResult struct {
	Term Term
	Dice []Die
}

// Total is the sum of the kept dice.
func (r TermResult) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d.Score()
	}
	return total
}

// Display renders the dice as "[d1+d2+...]" with chat markup.
func (r TermResult) Display() string {
	parts := make([]string, len(r.Dice))
	for i, d := range r.Dice {
		parts[i] = d.String()
	}
	return "[" + strings.Join(parts, "+") + "]"
}

// Arithmetic renders the kept values as "(k1+k2+...)", or "(0)" when every
// die was dropped.
func (r TermResult) Arithmetic() string {
	parts := make([]string, 0, len(r.Dice))
	for _, d := range r.Dice {
		if d.Kept() {
			parts = append(parts, strconv.Itoa(d.value))
		}
	}
	if len(parts) == 0 {
		return "(0)"
	}
	return "(" + strings.Join(parts, "+") + ")"
}

// Assembly is an input expression with its terms substituted.
type Assembly struct {
	Display    string
	Arithmetic string
	segments   []segment
}

// segment maps a byte range of the arithmetic form back onto the input.
type segment struct {
	inStart, inEnd int
	arStart, arEnd int
	term           bool
}

// Assemble replaces each term's byte range in input with its display form
// and, separately, its arithmetic form. Identical terms are substituted
// independently because replacement is by offset, not by text search.
//
// Precondition: results are ordered by Term.Start and do not overlap, as
// returned by FindTerms.
func Assemble(input string, results []TermResult) Assembly {
	var disp, arith strings.Builder
	var segs []segment

	literal := func(from, to int) {
		if from == to {
			return
		}
		ar := arith.Len()
		segs = append(segs, segment{inStart: from, inEnd: to, arStart: ar, arEnd: ar + to - from})
		disp.WriteString(input[from:to])
		arith.WriteString(input[from:to])
	}

	pos := 0
	for _, r := range results {
		literal(pos, r.Term.Start)
		disp.WriteString(r.Display())
		ar := arith.Len()
		arith.WriteString(r.Arithmetic())
		segs = append(segs, segment{inStart: r.Term.Start, inEnd: r.Term.End, arStart: ar, arEnd: arith.Len(), term: true})
		pos = r.Term.End
	}
	literal(pos, len(input))

	return Assembly{Display: disp.String(), Arithmetic: arith.String(), segments: segs}
}

// InputOffset maps a byte offset in the arithmetic form to the input. Offsets
// inside a substituted term map to the start of that term; offsets at or past
// the end map to the end of the input.
func (a Assembly) InputOffset(arithOffset int) int {
	for _, s := range a.segments {
		if arithOffset < s.arStart || arithOffset >= s.arEnd {
			continue
		}
		if s.term {
			return s.inStart
		}
		return s.inStart + arithOffset - s.arStart
	}
	if n := len(a.segments); n > 0 {
		return a.segments[n-1].inEnd
	}
	return 0
}
