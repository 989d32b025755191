package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dbot/internal/arith"
	commandmock "github.com/cory-johannsen/dbot/internal/command/mock"
	"github.com/cory-johannsen/dbot/internal/dice"
	"github.com/cory-johannsen/dbot/internal/macro"
)

var started = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

type fixture struct {
	roller *commandmock.MockDiceRoller
	oracle *commandmock.MockTextOracle
	reg    *Registry
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		roller: commandmock.NewMockDiceRoller(ctrl),
		oracle: commandmock.NewMockTextOracle(ctrl),
	}
	macros, err := macro.NewTable([]macro.Macro{
		{Name: "stats", Expression: "4d6k3", Description: "one ability score"},
		{Name: "fireball", Expression: "8d6"},
	})
	require.NoError(t, err)
	f.reg, err = NewBuiltinRegistry(Deps{
		Roller:           f.roller,
		Oracle:           f.oracle,
		Macros:           macros,
		Prefix:           "!",
		DefaultRoll:      "1d20",
		SimIterations:    10000,
		SimMaxIterations: 10000,
		Name:             "DBot",
		Started:          started,
		Now:              func() time.Time { return f.now },
	})
	require.NoError(t, err)
	f.now = started
	return f
}

func (f *fixture) run(t *testing.T, name, args string) string {
	t.Helper()
	cmd, ok := f.reg.Resolve(name)
	require.True(t, ok, "command %q not registered", name)
	out, err := cmd.Run(context.Background(), Request{Name: name, Args: args})
	require.NoError(t, err)
	return out
}

func TestRoll_Expression(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Roll("3*(2d8+9+1d6)").Return(dice.Result{Display: "3*([6+4]+9+[**6**])", Total: 75}, nil)
	assert.Equal(t, "3*([6+4]+9+[**6**]) = 75", f.run(t, "roll", "3*(2d8+9+1d6)"))
}

func TestRoll_DefaultExpression(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Roll("1d20").Return(dice.Result{Display: "[18]", Total: 18}, nil)
	assert.Equal(t, "[18] = 18", f.run(t, "r", ""))
}

func TestRoll_MacroExpands(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Roll("4d6k3").Return(dice.Result{Display: "[~~1~~+3+4+6]", Total: 13}, nil)
	assert.Equal(t, "[~~1~~+3+4+6] = 13", f.run(t, "roll", "Stats"))
}

func TestRoll_ErrorRendering(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "syntax",
			err:  &arith.SyntaxError{Input: "2d6+*3", Offset: 4, Msg: "unexpected '*'"},
			want: "Error In Dice Roll: unexpected '*'\n```\n2d6+*3\n    ^\n```",
		},
		{
			name: "malformed",
			err:  &dice.MalformedTermError{Input: "2dX", Offset: 2, Reason: "expected number of sides"},
			want: "Error In Dice Roll: malformed dice term, expected number of sides\n```\n2dX\n  ^\n```",
		},
		{
			name: "invalid",
			err:  &dice.InvalidDiceSpecError{Term: "0d6", Reason: "must roll at least one die"},
			want: "Error In Dice Roll: 0d6: must roll at least one die",
		},
		{
			name: "explosion",
			err:  &dice.ExplosionLimitExceededError{Term: "1d1!", Limit: 1000},
			want: "Error In Dice Roll: 1d1! exploded more than 1000 times",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "Error In Dice Roll: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.roller.EXPECT().Roll("x").Return(dice.Result{}, tt.err)
			assert.Equal(t, tt.want, f.run(t, "roll", "x"))
		})
	}
}

func TestRoll_RealRollerSyntaxError(t *testing.T) {
	reg, err := NewBuiltinRegistry(Deps{
		Roller:           dice.NewLoggedRoller(dice.NewSeededSource(1), dice.DefaultLimits, zap.NewNop()),
		Prefix:           "!",
		DefaultRoll:      "1d20",
		SimIterations:    10,
		SimMaxIterations: 10,
	})
	require.NoError(t, err)
	cmd, _ := reg.Resolve("roll")
	out, err := cmd.Run(context.Background(), Request{Name: "roll", Args: "2d6+*3"})
	require.NoError(t, err)
	assert.Contains(t, out, "```\n2d6+*3\n    ^\n```")
}

func TestRollSim_Defaults(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Simulate("1d20", 10000).Return(dice.Stats{Expression: "1d20", N: 10000, Min: 1, Max: 20, Mean: 10.5, StdDev: 5.766}, nil)
	out := f.run(t, "rollsim", "")
	assert.Equal(t, "**Dice Roll Simulator**\n1d20 rolled 10,000 times\nmin 1 | max 20 | mean 10.50 | stdev 5.77", out)
}

func TestRollSim_IterationsFlag(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Simulate("4d6k3", 500).Return(dice.Stats{Expression: "4d6k3", N: 500, Min: 3, Max: 18}, nil)
	out := f.run(t, "sim", "-n 500 stats")
	assert.Contains(t, out, "4d6k3 rolled 500 times")
}

func TestRollSim_IterationsCapped(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Simulate("2d6 + 1", 10000).Return(dice.Stats{Expression: "2d6 + 1", N: 10000}, nil)
	f.run(t, "rollsim", "--iterations=50000 2d6 + 1")
}

func TestRollSim_ReportsMostCommonTotal(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Simulate("2d6", 10000).Return(dice.Stats{
		Expression: "2d6", N: 10000, Min: 2, Max: 12, Mean: 7,
		Counts: map[int]int{2: 250, 7: 1700, 8: 1700, 12: 260},
	}, nil)
	out := f.run(t, "rollsim", "2d6")
	assert.True(t, strings.HasSuffix(out, "\nmost common 7 (1,700 times)"), out)
}

func TestRollSim_FlagAfterExpression(t *testing.T) {
	tests := []struct {
		args string
		expr string
		n    int
	}{
		{"1d20 -n 5", "1d20", 5},
		{"2d6 - 1 -n 3", "2d6 - 1", 3},
		{"1d20 -2 --iterations=7", "1d20 -2", 7},
		{"4d6 -n9 -1", "4d6 -1", 9},
		{"stats -n 2", "4d6k3", 2},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			f := newFixture(t)
			f.roller.EXPECT().Simulate(tt.expr, tt.n).Return(dice.Stats{Expression: tt.expr, N: tt.n}, nil)
			f.run(t, "rollsim", tt.args)
		})
	}
}

func TestRollSim_NegativeTermIsNotAFlag(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Simulate("1d20 -2", 10000).Return(dice.Stats{Expression: "1d20 -2", N: 10000}, nil)
	assert.Contains(t, f.run(t, "rollsim", "1d20 -2"), "1d20 -2 rolled 10,000 times")
}

func TestRollSim_BadIterations(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Iterations must be at least 1, got 0", f.run(t, "rollsim", "-n 0 1d6"))
	assert.Contains(t, f.run(t, "rollsim", "-n lots 1d6"), "Usage: !rollsim")
	assert.Contains(t, f.run(t, "rollsim", "1d6 -n"), "Usage: !rollsim")
}

func TestRollSim_RollError(t *testing.T) {
	f := newFixture(t)
	f.roller.EXPECT().Simulate("1d0", 10000).Return(dice.Stats{}, &dice.InvalidDiceSpecError{Term: "1d0", Reason: "dice must have at least one side"})
	assert.Equal(t, "Error In Dice Roll: 1d0: dice must have at least one side", f.run(t, "rollsim", "1d0"))
}

func TestMacros_List(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "**Macros**\nfireball: 8d6\nstats: 4d6k3 (one ability score)", f.run(t, "macros", ""))
}

func TestMacros_None(t *testing.T) {
	reg, err := NewBuiltinRegistry(Deps{Prefix: "!", DefaultRoll: "1d20", SimIterations: 1, SimMaxIterations: 1})
	require.NoError(t, err)
	cmd, _ := reg.Resolve("macros")
	out, err := cmd.Run(context.Background(), Request{Name: "macros"})
	require.NoError(t, err)
	assert.Equal(t, "No macros are defined.", out)
}

func TestFortune(t *testing.T) {
	f := newFixture(t)
	f.oracle.EXPECT().Fortune(gomock.Any()).Return("Fortune favors the bold.", nil)
	assert.Equal(t, "**Fortune**\nFortune favors the bold.", f.run(t, "fortune", ""))
}

func TestFortune_ErrorIsInternal(t *testing.T) {
	f := newFixture(t)
	f.oracle.EXPECT().Fortune(gomock.Any()).Return("", errors.New("not installed"))
	cmd, _ := f.reg.Resolve("fortune")
	_, err := cmd.Run(context.Background(), Request{Name: "fortune"})
	assert.Error(t, err)
}

func TestCowsayAndCowthink(t *testing.T) {
	f := newFixture(t)
	f.oracle.EXPECT().Cowsay(gomock.Any(), "DBot Rocks!", false).Return(" < DBot Rocks! >", nil)
	f.oracle.EXPECT().Cowsay(gomock.Any(), "", true).Return(" ( Moo )", nil)

	assert.Equal(t, "```\n < DBot Rocks! >\n```", f.run(t, "cs", "DBot Rocks!"))
	assert.Equal(t, "```\n ( Moo )\n```", f.run(t, "ct", ""))
}

func TestCalc(t *testing.T) {
	tests := []struct {
		args string
		want string
	}{
		{"1+2*3", "Results: 7"},
		{"(1 + 2) / 4", "Results: 0.75"},
		{"-2 * -2", "Results: 4"},
		{"2*pi", "Results: 6.283185307179586"},
		{"1+*2", "Syntax Error In Expression: unexpected \"*\"\n```\n1+*2\n  ^\n```"},
		{"", "Usage: !calc <expression>"},
	}
	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			f := newFixture(t)
			assert.Equal(t, tt.want, f.run(t, "calc", tt.args))
		})
	}
}

func TestCalc_DivisionByZero(t *testing.T) {
	f := newFixture(t)
	out := f.run(t, "calc", "1/0")
	assert.True(t, strings.HasPrefix(out, "Syntax Error In Expression: "), out)
	assert.Contains(t, out, "```\n1/0\n")
}

func TestUptime(t *testing.T) {
	f := newFixture(t)
	f.now = started.Add(90*time.Minute + 4*time.Second + 600*time.Millisecond)
	assert.Equal(t, "Up for 1h30m5s", f.run(t, "uptime", ""))
}

func TestUptime_ClockBehindStart(t *testing.T) {
	f := newFixture(t)
	f.now = started.Add(-time.Minute)
	assert.Equal(t, "Up for 0s", f.run(t, "uptime", ""))
}

func TestAbout(t *testing.T) {
	f := newFixture(t)
	f.now = started.Add(2 * time.Hour)
	out := f.run(t, "about", "")
	assert.True(t, strings.HasPrefix(out, "**About DBot**\n"), out)
	assert.Contains(t, out, "Type !help for commands.")
	assert.Contains(t, out, "Uptime: 2h0m0s")
	assert.Contains(t, out, "Runtime: go")
}

func TestHelp_All(t *testing.T) {
	f := newFixture(t)
	out := f.run(t, "help", "")
	assert.Contains(t, out, "**Commands**")
	assert.Contains(t, out, "__dice__\n  !macros: ")
	assert.Contains(t, out, "!cowsay: ")
	assert.Contains(t, out, "Type !help <command> for usage.")
	assert.Less(t, strings.Index(out, "__dice__"), strings.Index(out, "__fun__"))
	assert.Less(t, strings.Index(out, "__fun__"), strings.Index(out, "__system__"))
}

func TestHelp_OneCommand(t *testing.T) {
	f := newFixture(t)
	out := f.run(t, "?", "!sim")
	assert.Equal(t, "Usage: !rollsim [-n iterations] [expression | macro]\nRoll an expression many times and summarize the totals\nAliases: sim", out)
}

func TestHelp_UnknownCommand(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, `Command "teleport" is not found`, f.run(t, "help", "teleport"))
}
