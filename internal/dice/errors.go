package dice

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/dbot/internal/arith"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrMalformedTerm   = errors.New("dice: malformed term")
	ErrInvalidDiceSpec = errors.New("dice: invalid dice specification")
	ErrExplosionLimit  = errors.New("dice: explosion limit exceeded")
)

// MalformedTermError reports text that starts like a dice term but does not
// complete the NdM[!][k|d]P grammar.
type MalformedTermError struct {
	Input  string // full text being scanned
	Offset int    // byte offset of the offending character
	Reason string
}

func (e *MalformedTermError) Error() string {
	return fmt.Sprintf("dice: malformed term at offset %d in %q: %s", e.Offset, e.Input, e.Reason)
}

// Is reports whether target is ErrMalformedTerm.
func (e *MalformedTermError) Is(target error) bool { return target == ErrMalformedTerm }

// Pointer renders Input with a caret under the offending character.
func (e *MalformedTermError) Pointer() string { return arith.Caret(e.Input, e.Offset) }

// InvalidDiceSpecError reports a term that parsed but cannot be rolled.
type InvalidDiceSpecError struct {
	Term   string
	Reason string
}

func (e *InvalidDiceSpecError) Error() string {
	return fmt.Sprintf("dice: invalid dice %q: %s", e.Term, e.Reason)
}

// Is reports whether target is ErrInvalidDiceSpec.
func (e *InvalidDiceSpecError) Is(target error) bool { return target == ErrInvalidDiceSpec }

// ExplosionLimitExceededError reports an exploding chain that hit the fuse.
type ExplosionLimitExceededError struct {
	Term  string
	Limit int
}

func (e *ExplosionLimitExceededError) Error() string {
	return fmt.Sprintf("dice: %q exploded more than %d times on a single die", e.Term, e.Limit)
}

// Is reports whether target is ErrExplosionLimit.
func (e *ExplosionLimitExceededError) Is(target error) bool { return target == ErrExplosionLimit }
