package dice

import (
	"fmt"
	"math"
	"sort"
)

// Stats summarises repeated rolls of one expression.
type Stats struct {
	Expression string
	N          int
	Min        int
	Max        int
	Mean       float64
	StdDev     float64 // sample standard deviation; 0 when N < 2
	Counts     map[int]int
}

// Totals returns the distinct totals seen, ascending.
func (s Stats) Totals() []int {
	totals := make([]int, 0, len(s.Counts))
	for t := range s.Counts {
		totals = append(totals, t)
	}
	sort.Ints(totals)
	return totals
}

// Mode returns the most frequent total and how often it came up. Ties go to
// the lowest total. An empty Stats returns (0, 0).
func (s Stats) Mode() (total, count int) {
	for _, t := range s.Totals() {
		if c := s.Counts[t]; c > count {
			total, count = t, c
		}
	}
	return total, count
}

func simBudgetError(input string, n, limit int) *InvalidDiceSpecError {
	return &InvalidDiceSpecError{Term: input, Reason: fmt.Sprintf("%d rolls would exceed the simulation budget of %d dice", n, limit)}
}

// Simulate rolls input n times with src and returns the distribution of
// totals. The first failing roll aborts the simulation, as does rolling more
// than limits.MaxSimDice dice in total.
//
// Precondition: n >= 1; src must be non-nil.
// Postcondition: s.N == n and the sum of s.Counts == n.
func Simulate(input string, n int, src Source, limits Limits) (Stats, error) {
	if n < 1 {
		return Stats{}, fmt.Errorf("dice: simulation needs at least one iteration, got %d", n)
	}

	terms, err := FindTerms(input)
	if err != nil {
		return Stats{}, err
	}
	if limits.MaxSimDice > 0 && countDice(terms) > limits.MaxSimDice/n {
		return Stats{}, simBudgetError(input, n, limits.MaxSimDice)
	}

	s := Stats{Expression: input, N: n, Counts: make(map[int]int)}
	var sum float64
	totals := make([]int, 0, n)
	rolledDice := 0
	for i := range n {
		r, err := Roll(input, src, limits)
		if err != nil {
			return Stats{}, err
		}
		rolledDice += r.DiceCount()
		if limits.MaxSimDice > 0 && rolledDice > limits.MaxSimDice {
			return Stats{}, simBudgetError(input, n, limits.MaxSimDice)
		}
		if i == 0 || r.Total < s.Min {
			s.Min = r.Total
		}
		if i == 0 || r.Total > s.Max {
			s.Max = r.Total
		}
		s.Counts[r.Total]++
		sum += float64(r.Total)
		totals = append(totals, r.Total)
	}

	s.Mean = sum / float64(n)
	if n > 1 {
		var sq float64
		for _, t := range totals {
			d := float64(t) - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(n-1))
	}
	return s, nil
}
