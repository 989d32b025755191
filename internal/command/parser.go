package command

import "strings"

// ParseResult holds the parsed command name and arguments from a chat line.
type ParseResult struct {
	// Command is the first word after the prefix, lowercased.
	Command string
	// RawArgs is the raw text after the command, preserving inner spacing.
	RawArgs string
}

// Parse splits a prefixed chat line into a command and arguments.
//
// Precondition: prefix must be non-empty.
// Postcondition: Returns ok == false when line does not start with prefix or
// names no command.
func Parse(line, prefix string) (ParseResult, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return ParseResult{}, false
	}
	line = line[len(prefix):]
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return ParseResult{}, false
	}

	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return ParseResult{Command: strings.ToLower(line)}, true
	}

	return ParseResult{
		Command: strings.ToLower(line[:idx]),
		RawArgs: strings.TrimSpace(line[idx+1:]),
	}, true
}
