package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectMode says which dice a keep/drop modifier removes from the total.
type SelectMode int

const (
	SelectNone SelectMode = iota
	SelectKeep            // kN: keep the N highest dice
	SelectDrop            // dN: drop the N highest dice
)

// KeepDrop is the optional [k|d]N modifier of a term.
type KeepDrop struct {
	Mode  SelectMode
	Count int
}

// Active reports whether the modifier was present in the term.
func (k KeepDrop) Active() bool { return k.Mode != SelectNone }

// Term is one parsed NdM[!][k|d]P unit of a roll expression.
type Term struct {
	Text      string // matched text, e.g. "2d8!k1"
	Start     int    // byte offset of Text in the scanned input
	End       int    // byte offset just past Text
	Count     int
	Sides     int
	Exploding bool
	KeepDrop  KeepDrop
}

// String returns the canonical notation of the term.
func (t Term) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", t.Count, t.Sides)
	if t.Exploding {
		b.WriteByte('!')
	}
	switch t.KeepDrop.Mode {
	case SelectKeep:
		fmt.Fprintf(&b, "k%d", t.KeepDrop.Count)
	case SelectDrop:
		fmt.Fprintf(&b, "d%d", t.KeepDrop.Count)
	}
	return b.String()
}

// FindTerms returns every dice term in text, left to right and non-overlapping.
// Everything that is not a term is left for the arithmetic evaluator.
//
// A run of digits followed by 'd' always starts a term; if the rest of the
// grammar does not follow, FindTerms fails with a *MalformedTermError rather
// than silently treating the text as arithmetic.
//
// Postcondition: terms are ordered by Start and text[t.Start:t.End] == t.Text.
func FindTerms(text string) ([]Term, error) {
	var terms []Term
	i := 0
	for i < len(text) {
		if !isDigit(text[i]) {
			i++
			continue
		}
		t, ok, err := scanTerm(text, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			i = skipDigits(text, i)
			continue
		}
		terms = append(terms, t)
		i = t.End
	}
	return terms, nil
}

// ParseTerm parses text that must consist of exactly one dice term.
//
// Postcondition: Returns the Term or a *MalformedTermError / *InvalidDiceSpecError.
func ParseTerm(text string) (Term, error) {
	if text == "" || !isDigit(text[0]) {
		return Term{}, &MalformedTermError{Input: text, Offset: 0, Reason: "expected a dice count"}
	}
	t, ok, err := scanTerm(text, 0)
	if err != nil {
		return Term{}, err
	}
	if !ok {
		return Term{}, &MalformedTermError{Input: text, Offset: skipDigits(text, 0), Reason: "expected 'd'"}
	}
	if t.End != len(text) {
		return Term{}, &MalformedTermError{Input: text, Offset: t.End, Reason: "unexpected text after term"}
	}
	return t, nil
}

// scanTerm matches the term grammar at text[start:]. ok is false when the
// digits at start are not followed by 'd' and so are plain arithmetic.
//
// Precondition: text[start] is a digit.
func scanTerm(text string, start int) (t Term, ok bool, err error) {
	countEnd := skipDigits(text, start)
	if countEnd >= len(text) || text[countEnd] != 'd' {
		return Term{}, false, nil
	}

	sidesStart := countEnd + 1
	sidesEnd := skipDigits(text, sidesStart)
	if sidesEnd == sidesStart {
		return Term{}, false, &MalformedTermError{Input: text, Offset: sidesStart, Reason: "expected number of sides after 'd'"}
	}

	pos := sidesEnd
	exploding := false
	if pos < len(text) && text[pos] == '!' {
		exploding = true
		pos++
	}

	var kd KeepDrop
	if pos < len(text) && (text[pos] == 'k' || text[pos] == 'd') {
		mode := SelectKeep
		if text[pos] == 'd' {
			mode = SelectDrop
		}
		nStart := pos + 1
		nEnd := skipDigits(text, nStart)
		if nEnd == nStart {
			return Term{}, false, &MalformedTermError{Input: text, Offset: nStart, Reason: fmt.Sprintf("expected a count after '%c'", text[pos])}
		}
		n, err := strconv.Atoi(text[nStart:nEnd])
		if err != nil {
			return Term{}, false, &InvalidDiceSpecError{Term: text[start:nEnd], Reason: "keep/drop count out of range"}
		}
		kd = KeepDrop{Mode: mode, Count: n}
		pos = nEnd
	}

	raw := text[start:pos]
	count, err := strconv.Atoi(text[start:countEnd])
	if err != nil {
		return Term{}, false, &InvalidDiceSpecError{Term: raw, Reason: "dice count out of range"}
	}
	sides, err := strconv.Atoi(text[sidesStart:sidesEnd])
	if err != nil {
		return Term{}, false, &InvalidDiceSpecError{Term: raw, Reason: "number of sides out of range"}
	}

	return Term{
		Text:      raw,
		Start:     start,
		End:       pos,
		Count:     count,
		Sides:     sides,
		Exploding: exploding,
		KeepDrop:  kd,
	}, true, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func skipDigits(text string, i int) int {
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	return i
}
