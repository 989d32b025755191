package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cory-johannsen/dbot/internal/arith"
	"github.com/cory-johannsen/dbot/internal/dice"
	"github.com/cory-johannsen/dbot/internal/macro"
)

// Deps are the collaborators and settings the built-in commands need.
type Deps struct {
	Roller DiceRoller
	Oracle TextOracle
	// Macros may be nil when no macro directory is configured.
	Macros *macro.Table
	// Prefix is shown in help and usage text.
	Prefix      string
	DefaultRoll string
	// SimIterations is the rollsim default; SimMaxIterations caps -n.
	SimIterations    int
	SimMaxIterations int
	// Name is the bot name shown by about.
	Name string
	// Started is when the bot came up; Now defaults to time.Now.
	Started time.Time
	Now     func() time.Time
}

type builtins struct {
	deps     Deps
	registry *Registry
	printer  *message.Printer
}

// NewBuiltinRegistry creates a Registry with all built-in commands wired to deps.
//
// Precondition: deps.Roller and deps.Oracle must be non-nil; deps.SimIterations
// and deps.SimMaxIterations must be >= 1.
// Postcondition: Returns a Registry with all built-in commands registered.
func NewBuiltinRegistry(deps Deps) (*Registry, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	b := &builtins{deps: deps, printer: message.NewPrinter(language.English)}
	reg, err := NewRegistry(b.commands())
	if err != nil {
		return nil, fmt.Errorf("building builtin registry: %w", err)
	}
	b.registry = reg
	return reg, nil
}

func (b *builtins) commands() []Command {
	return []Command{
		{Name: "roll", Aliases: []string{"r"}, Usage: "[expression | macro]", Help: "Roll dice, e.g. 3*(2d8!+9+1d6!k1)", Category: CategoryDice, Run: b.roll},
		{Name: "rollsim", Aliases: []string{"sim"}, Usage: "[-n iterations] [expression | macro]", Help: "Roll an expression many times and summarize the totals", Category: CategoryDice, Run: b.rollSim},
		{Name: "macros", Usage: "", Help: "List the named roll macros", Category: CategoryDice, Run: b.macros},
		{Name: "fortune", Usage: "", Help: "Display a fortune from the famous UNIX command", Category: CategoryFun, Run: b.fortune},
		{Name: "cowsay", Aliases: []string{"cs"}, Usage: "[message]", Help: `The cow says "Moo" or whatever you want`, Category: CategoryFun, Run: b.cowsay},
		{Name: "cowthink", Aliases: []string{"ct"}, Usage: "[message]", Help: `The cow thinks "Moo" or whatever you want`, Category: CategoryFun, Run: b.cowthink},
		{Name: "calc", Usage: "<expression>", Help: "A handy calculator, e.g. (1+2)*pi/4", Category: CategorySystem, Run: b.calc},
		{Name: "about", Usage: "", Help: "Show what this bot is and how long it has been up", Category: CategorySystem, Run: b.about},
		{Name: "uptime", Usage: "", Help: "Show how long the bot has been running", Category: CategorySystem, Run: b.uptime},
		{Name: "help", Aliases: []string{"?"}, Usage: "[command]", Help: "Show commands, or usage for one command", Category: CategorySystem, Run: b.help},
	}
}

// expression resolves the roll argument: empty means the default roll and a
// macro name means the macro's expression.
func (b *builtins) expression(args string) string {
	if args == "" {
		return b.deps.DefaultRoll
	}
	return b.deps.Macros.Expand(args)
}

func (b *builtins) roll(_ context.Context, req Request) (string, error) {
	result, err := b.deps.Roller.Roll(b.expression(req.Args))
	if err != nil {
		return rollError(err), nil
	}
	return result.String(), nil
}

func (b *builtins) rollSim(_ context.Context, req Request) (string, error) {
	fs := pflag.NewFlagSet(req.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	n := fs.IntP("iterations", "n", b.deps.SimIterations, "number of rolls")
	flags, words := splitIterations(strings.Fields(req.Args))
	if err := fs.Parse(flags); err != nil {
		return fmt.Sprintf("Usage: %s%s %s", b.deps.Prefix, req.Name, "[-n iterations] [expression | macro]"), nil
	}
	if *n < 1 {
		return fmt.Sprintf("Iterations must be at least 1, got %d", *n), nil
	}
	*n = min(*n, b.deps.SimMaxIterations)

	expr := b.expression(strings.Join(words, " "))
	stats, err := b.deps.Roller.Simulate(expr, *n)
	if err != nil {
		return rollError(err), nil
	}
	out := b.printer.Sprintf("**Dice Roll Simulator**\n%s rolled %d times\nmin %d | max %d | mean %.2f | stdev %.2f",
		stats.Expression, stats.N, stats.Min, stats.Max, stats.Mean, stats.StdDev)
	if total, count := stats.Mode(); count > 0 {
		out += b.printer.Sprintf("\nmost common %d (%d times)", total, count)
	}
	return out, nil
}

func (b *builtins) calc(_ context.Context, req Request) (string, error) {
	if req.Args == "" {
		return fmt.Sprintf("Usage: %s%s <expression>", b.deps.Prefix, req.Name), nil
	}
	v, err := arith.Eval(req.Args)
	if err != nil {
		var se *arith.SyntaxError
		if errors.As(err, &se) {
			return "Syntax Error In Expression: " + se.Msg + "\n" + codeBlock(se.Pointer()), nil
		}
		return "", err
	}
	return "Results: " + strconv.FormatFloat(v, 'g', -1, 64), nil
}

func (b *builtins) elapsed() time.Duration {
	return max(b.deps.Now().Sub(b.deps.Started), 0).Round(time.Second)
}

func (b *builtins) uptime(_ context.Context, _ Request) (string, error) {
	return fmt.Sprintf("Up for %s", b.elapsed()), nil
}

func (b *builtins) about(_ context.Context, _ Request) (string, error) {
	return fmt.Sprintf("**About %s**\nA dice rolling bot. Type %shelp for commands.\nUptime: %s\nRuntime: %s %s/%s",
		b.deps.Name, b.deps.Prefix, b.elapsed(), runtime.Version(), runtime.GOOS, runtime.GOARCH), nil
}

// splitIterations pulls the -n/--iterations flag out of fields wherever it
// appears. Everything else, including signed numbers such as -2, stays part
// of the expression.
func splitIterations(fields []string) (flags, words []string) {
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		switch {
		case f == "-n" || f == "--iterations":
			flags = append(flags, f)
			if i+1 < len(fields) {
				i++
				flags = append(flags, fields[i])
			}
		case strings.HasPrefix(f, "--iterations="), strings.HasPrefix(f, "-n"):
			flags = append(flags, f)
		default:
			words = append(words, f)
		}
	}
	return flags, words
}

func (b *builtins) macros(_ context.Context, _ Request) (string, error) {
	all := b.deps.Macros.All()
	if len(all) == 0 {
		return "No macros are defined.", nil
	}
	var sb strings.Builder
	sb.WriteString("**Macros**")
	for _, m := range all {
		fmt.Fprintf(&sb, "\n%s: %s", m.Name, m.Expression)
		if m.Description != "" {
			fmt.Fprintf(&sb, " (%s)", m.Description)
		}
	}
	return sb.String(), nil
}

func (b *builtins) fortune(ctx context.Context, _ Request) (string, error) {
	out, err := b.deps.Oracle.Fortune(ctx)
	if err != nil {
		return "", err
	}
	return "**Fortune**\n" + out, nil
}

func (b *builtins) cowsay(ctx context.Context, req Request) (string, error) {
	return b.cow(ctx, req.Args, false)
}

func (b *builtins) cowthink(ctx context.Context, req Request) (string, error) {
	return b.cow(ctx, req.Args, true)
}

func (b *builtins) cow(ctx context.Context, msg string, think bool) (string, error) {
	out, err := b.deps.Oracle.Cowsay(ctx, msg, think)
	if err != nil {
		return "", err
	}
	return codeBlock(out), nil
}

func (b *builtins) help(_ context.Context, req Request) (string, error) {
	if req.Args != "" {
		name := strings.ToLower(strings.TrimPrefix(strings.Fields(req.Args)[0], b.deps.Prefix))
		cmd, ok := b.registry.Resolve(name)
		if !ok {
			return notFound(name), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Usage: %s%s", b.deps.Prefix, cmd.Name)
		if cmd.Usage != "" {
			sb.WriteString(" " + cmd.Usage)
		}
		sb.WriteString("\n" + cmd.Help)
		if len(cmd.Aliases) > 0 {
			sb.WriteString("\nAliases: " + strings.Join(cmd.Aliases, ", "))
		}
		return sb.String(), nil
	}

	byCat := b.registry.CommandsByCategory()
	var sb strings.Builder
	sb.WriteString("**Commands**")
	for _, cat := range []string{CategoryDice, CategoryFun, CategorySystem} {
		cmds := byCat[cat]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n__%s__", cat)
		for _, cmd := range cmds {
			fmt.Fprintf(&sb, "\n  %s%s: %s", b.deps.Prefix, cmd.Name, cmd.Help)
		}
	}
	fmt.Fprintf(&sb, "\nType %shelp <command> for usage.", b.deps.Prefix)
	return sb.String(), nil
}

// rollError renders a dice failure for the user, with a caret under the
// offending character when the position is known.
func rollError(err error) string {
	var se *arith.SyntaxError
	if errors.As(err, &se) {
		return "Error In Dice Roll: " + se.Msg + "\n" + codeBlock(se.Pointer())
	}
	var me *dice.MalformedTermError
	if errors.As(err, &me) {
		return "Error In Dice Roll: malformed dice term, " + me.Reason + "\n" + codeBlock(me.Pointer())
	}
	var ie *dice.InvalidDiceSpecError
	if errors.As(err, &ie) {
		return fmt.Sprintf("Error In Dice Roll: %s: %s", ie.Term, ie.Reason)
	}
	var ee *dice.ExplosionLimitExceededError
	if errors.As(err, &ee) {
		return fmt.Sprintf("Error In Dice Roll: %s exploded more than %d times", ee.Term, ee.Limit)
	}
	return "Error In Dice Roll: " + err.Error()
}

func codeBlock(s string) string {
	return "```\n" + s + "\n```"
}

func notFound(name string) string {
	return fmt.Sprintf("Command %q is not found", name)
}
