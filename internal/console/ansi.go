// Package console provides an interactive terminal front end for the bot,
// rendering chat markup as ANSI styles.
package console

import "strings"

// ANSI escape code constants for terminal styling.
const (
	Reset         = "\033[0m"
	Bold          = "\033[1m"
	Dim           = "\033[2m"
	Underline     = "\033[4m"
	Strikethrough = "\033[9m"
	Cyan          = "\033[36m"
)

const fence = "```"

// markers maps each chat markup delimiter to its ANSI style, in the order
// styles are re-applied after a reset.
var markers = []struct {
	delim string
	style string
}{
	{"**", Bold},
	{"__", Underline},
	{"~~", Strikethrough},
}

// Render converts chat markup to ANSI. Bold (**), underline (__) and
// strikethrough (~~) toggle their styles and may nest; code fences are
// removed and their contents written verbatim. With color disabled the text
// is returned unchanged.
//
// Postcondition: when color is true, StripANSI(Render(s, true)) contains no
// markup delimiters outside code fences.
func Render(s string, color bool) string {
	if !color {
		return s
	}
	var sb strings.Builder
	parts := strings.Split(s, fence)
	for i, part := range parts {
		if i%2 == 1 {
			sb.WriteString(Dim)
			sb.WriteString(strings.TrimSuffix(strings.TrimPrefix(part, "\n"), "\n"))
			sb.WriteString(Reset)
			continue
		}
		renderMarkup(&sb, part)
	}
	return sb.String()
}

func renderMarkup(sb *strings.Builder, s string) {
	active := make([]bool, len(markers))
	for i := 0; i < len(s); {
		matched := false
		for m, mk := range markers {
			if !strings.HasPrefix(s[i:], mk.delim) {
				continue
			}
			active[m] = !active[m]
			if active[m] {
				sb.WriteString(mk.style)
			} else {
				sb.WriteString(Reset)
				for k, on := range active {
					if on {
						sb.WriteString(markers[k].style)
					}
				}
			}
			i += len(mk.delim)
			matched = true
			break
		}
		if !matched {
			sb.WriteByte(s[i])
			i++
		}
	}
	for _, on := range active {
		if on {
			sb.WriteString(Reset)
			return
		}
	}
}

// Colorize wraps text with the given ANSI code and a reset suffix.
//
// Precondition: code must be a valid ANSI escape sequence.
func Colorize(code, text string) string {
	return code + text + Reset
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}
