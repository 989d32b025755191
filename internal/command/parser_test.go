package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		ok      bool
		command string
		rawArgs string
	}{
		{"!roll 1d20", true, "roll", "1d20"},
		{"!ROLL 2d6 + 3", true, "roll", "2d6 + 3"},
		{"  !r  ", true, "r", ""},
		{"!cowsay   dbot   rocks  ", true, "cowsay", "dbot   rocks"},
		{"!sim\t-n 5 1d6", true, "sim", "-n 5 1d6"},
		{"roll 1d20", false, "", ""},
		{"!", false, "", ""},
		{"! roll", false, "", ""},
		{"", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, ok := Parse(tt.input, "!")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.command, result.Command)
			assert.Equal(t, tt.rawArgs, result.RawArgs)
		})
	}
}

func TestParse_MultiCharPrefix(t *testing.T) {
	result, ok := Parse("dbot!roll 4d6k3", "dbot!")
	assert.True(t, ok)
	assert.Equal(t, "roll", result.Command)
	assert.Equal(t, "4d6k3", result.RawArgs)
}

// TestParse_CommandIsLowercaseWord verifies a parsed command is always a
// lowercase word with no whitespace.
func TestParse_CommandIsLowercaseWord(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := "!" + rapid.StringMatching(`[A-Za-z]{1,8}( [a-z0-9d+]{0,10}){0,3}`).Draw(t, "line")
		result, ok := Parse(line, "!")
		assert.True(t, ok)
		assert.NotEmpty(t, result.Command)
		assert.NotContains(t, result.Command, " ")
		assert.Equal(t, result.Command, strings.ToLower(result.Command))
	})
}
