package annex

import (
	"fmt"

	"golang.org/x/exp/ebnf"
)

// Token is a run of input matched by a grammar production.
type Token struct {
	Name   string
	Text   string
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Name, t.Text)
}

type memoKey struct {
	name   string
	offset int
}

// Matcher recognizes grammar productions directly from the EBNF. Repetitions
// are greedy and never give input back, and an alternative takes its longest
// member, so a production such as block_comment, whose comment_text can
// swallow the closing delimiter, is not recognized the way the parser does.
// It agrees with the parser on white space and identifiers.
type Matcher struct {
	grammar  ebnf.Grammar
	input    []byte
	memo     map[memoKey]int // match length, -1 for no match
	visiting map[memoKey]bool
}

func NewMatcher(g ebnf.Grammar, input []byte) *Matcher {
	return &Matcher{
		grammar:  g,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Match returns the length of the match of production name at offset.
func (m *Matcher) Match(name string, offset int) (int, bool) {
	n := m.matchName(name, offset)
	return n, n >= 0
}

// Tokenize splits the input into tokens of the named productions. At each
// offset the longest non-empty match wins, ties going to the earlier name.
// A byte no production matches becomes a one-byte token named "ERROR".
func (m *Matcher) Tokenize(names ...string) []Token {
	var tokens []Token
	line, column := 1, 1
	for offset := 0; offset < len(m.input); {
		tok := Token{Name: "ERROR", Offset: offset, Line: line, Column: column}
		length := 1
		best := 0
		for _, name := range names {
			if n, ok := m.Match(name, offset); ok && n > best {
				best = n
				tok.Name = name
			}
		}
		if best > 0 {
			length = best
		}
		tok.Text = string(m.input[offset : offset+length])
		tokens = append(tokens, tok)

		for _, ch := range m.input[offset : offset+length] {
			if ch == '\n' {
				line++
				column = 1
			} else {
				column++
			}
		}
		offset += length
	}
	return tokens
}

// match returns the length matched by expr at offset, or -1.
func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		return m.matchToken(e.String, offset)

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := m.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n <= 0 {
				break
			}
			total += n
		}
		return total

	case *ebnf.Option:
		return max(m.match(e.Body, offset), 0)

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return -1
}

// matchName memoizes production matches and breaks left recursion.
func (m *Matcher) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return n
	}
	if m.visiting[key] {
		return -1
	}
	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = -1
		return -1
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = n
	return n
}

func (m *Matcher) matchToken(s string, offset int) int {
	if offset+len(s) > len(m.input) {
		return -1
	}
	if string(m.input[offset:offset+len(s)]) == s {
		return len(s)
	}
	return -1
}

// matchRange matches one byte between begin and end inclusive.
func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) || len(begin) != 1 || len(end) != 1 {
		return -1
	}
	if ch := m.input[offset]; ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return -1
}
