// Package command provides the chat command registry, parser, dispatcher and
// built-in command handlers.
package command

import "context"

// Categories for organizing commands in help output.
const (
	CategoryDice   = "dice"
	CategoryFun    = "fun"
	CategorySystem = "system"
)

// Request is one invocation of a command.
type Request struct {
	// Message is the chat message that triggered the command.
	Message Message
	// Name is the word the user typed, which may be an alias.
	Name string
	// Args is the raw text after the command word, trimmed.
	Args string
}

// HandlerFunc runs a command and returns the reply text. A non-nil error is
// an internal fault; user mistakes are reported in the reply text instead.
type HandlerFunc func(ctx context.Context, req Request) (string, error)

// Command defines a user-invocable chat command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument syntax, without the prefix or name.
	Usage string
	// Help is the short help text displayed to users.
	Help string
	// Category groups the command (dice, fun, system).
	Category string
	// Run handles the command.
	Run HandlerFunc
}
