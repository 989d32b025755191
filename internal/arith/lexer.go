package arith

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	pos   int
	text  string
	value float64
}

// constants are the only names an expression may reference.
var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
}

// lex splits input into tokens, ending with a tokEOF at len(input).
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			start := i
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			if i < len(input) && input[i] == '.' {
				i++
				for i < len(input) && isDigit(input[i]) {
					i++
				}
			}
			text := input[start:i]
			if text == "." {
				return nil, &SyntaxError{Input: input, Offset: start, Msg: "expected a number"}
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, &SyntaxError{Input: input, Offset: start, Msg: fmt.Sprintf("invalid number %q", text), Err: err}
			}
			toks = append(toks, token{kind: tokNumber, pos: start, text: text, value: v})
		case isLetter(c):
			start := i
			for i < len(input) && isLetter(input[i]) {
				i++
			}
			name := input[start:i]
			v, ok := constants[name]
			if !ok {
				return nil, &SyntaxError{Input: input, Offset: start, Msg: fmt.Sprintf("unknown name %q", name)}
			}
			toks = append(toks, token{kind: tokNumber, pos: start, text: name, value: v})
		default:
			kind, ok := operators[c]
			if !ok {
				r, _ := utf8.DecodeRuneInString(input[i:])
				return nil, &SyntaxError{Input: input, Offset: i, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			toks = append(toks, token{kind: kind, pos: i, text: string(c)})
			i++
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(input)}), nil
}

var operators = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
