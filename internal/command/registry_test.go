package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, Request) (string, error) { return "", nil }

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewBuiltinRegistry(Deps{Prefix: "!", DefaultRoll: "1d20", SimIterations: 10, SimMaxIterations: 100})
	require.NoError(t, err)
	return reg
}

func TestResolve_CanonicalNameAndAlias(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		input string
		name  string
	}{
		{"roll", "roll"},
		{"r", "roll"},
		{"rollsim", "rollsim"},
		{"sim", "rollsim"},
		{"macros", "macros"},
		{"fortune", "fortune"},
		{"cowsay", "cowsay"},
		{"cs", "cowsay"},
		{"cowthink", "cowthink"},
		{"ct", "cowthink"},
		{"help", "help"},
		{"?", "help"},
	}
	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.name, cmd.Name)
		assert.NotNil(t, cmd.Run)
	}
}

func TestResolve_NotFound(t *testing.T) {
	_, ok := testRegistry(t).Resolve("teleport")
	assert.False(t, ok)
}

func TestCommands_SortedByName(t *testing.T) {
	cmds := testRegistry(t).Commands()
	require.Len(t, cmds, 10)
	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1].Name, cmds[i].Name)
	}
}

func TestCommandsByCategory(t *testing.T) {
	byCat := testRegistry(t).CommandsByCategory()
	assert.Len(t, byCat[CategoryDice], 3)
	assert.Len(t, byCat[CategoryFun], 3)
	assert.Len(t, byCat[CategorySystem], 4)
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "roll", Run: noop},
		{Name: "roll", Run: noop},
	})
	assert.Error(t, err)
}

func TestNewRegistry_AliasConflictsWithName(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "roll", Run: noop},
		{Name: "reroll", Aliases: []string{"roll"}, Run: noop},
	})
	assert.Error(t, err)
}

func TestNewRegistry_NameConflictsWithAlias(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "roll", Aliases: []string{"r"}, Run: noop},
		{Name: "r", Run: noop},
	})
	assert.Error(t, err)
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	_, err := NewRegistry([]Command{
		{Name: "roll", Aliases: []string{"r"}, Run: noop},
		{Name: "reroll", Aliases: []string{"r"}, Run: noop},
	})
	assert.Error(t, err)
}

func TestNewRegistry_MissingHandler(t *testing.T) {
	_, err := NewRegistry([]Command{{Name: "roll"}})
	assert.Error(t, err)
}
