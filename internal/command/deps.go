package command

import (
	"context"

	"github.com/cory-johannsen/dbot/internal/dice"
)

//go:generate mockgen -destination=mock/mock_deps.go -package=commandmock github.com/cory-johannsen/dbot/internal/command DiceRoller,TextOracle

// DiceRoller evaluates roll expressions. *dice.Roller satisfies it.
type DiceRoller interface {
	Roll(input string) (dice.Result, error)
	Simulate(input string, n int) (dice.Stats, error)
}

// TextOracle produces text from the UNIX toys. *oracle.Exec satisfies it.
type TextOracle interface {
	Fortune(ctx context.Context) (string, error)
	Cowsay(ctx context.Context, message string, think bool) (string, error)
}
