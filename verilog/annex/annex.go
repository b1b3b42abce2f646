// Package annex holds the IEEE 1800-2017 Annex A productions that the
// parser implements, both as an EBNF grammar and as a registry mapping each
// production to its parser.NodeKind and its citation.
package annex

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the production grammar verification begins at.
const Start = "Kernel"

//go:embed annex_a.ebnf
var grammarSource []byte

// Source returns the embedded grammar text.
func Source() []byte {
	return grammarSource
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return ebnf.Parse("annex_a.ebnf", bytes.NewReader(grammarSource))
}

// Verify parses the embedded grammar, checks it is closed and fully reachable
// from Start, and checks it against the registry.
func Verify() error {
	g, err := Load()
	if err != nil {
		return fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return CheckRegistry(g)
}

// CheckRegistry reports productions present in only one of g and the
// registry, and citations in the grammar comments that disagree with the
// registry.
func CheckRegistry(g ebnf.Grammar) error {
	var errs []error
	for _, p := range registry {
		if _, ok := g[p.Name]; !ok {
			errs = append(errs, fmt.Errorf("%s: registered but missing from grammar", p.Name))
		}
	}
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == Start {
			continue
		}
		if _, ok := Lookup(name); !ok {
			errs = append(errs, fmt.Errorf("%s: grammar production is not registered", name))
		}
	}

	cited, err := Citations(grammarSource)
	if err != nil {
		return err
	}
	for _, p := range registry {
		got, ok := cited[p.Name]
		switch {
		case !ok && p.Cited():
			errs = append(errs, fmt.Errorf("%s: grammar lacks citation %q", p.Name, p.Citation()))
		case ok && got != p.Citation():
			errs = append(errs, fmt.Errorf("%s: grammar cites %q, registry has %q", p.Name, got, p.Citation()))
		}
	}
	return errors.Join(errs...)
}

var (
	citationPattern   = regexp.MustCompile(`^//\s*(A\.[0-9.]+ .+ DEF: [0-9]+)\s*$`)
	productionPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=`)
)

// Citations maps each production in an annotated grammar to the citation in
// the comment line directly above it.
func Citations(src []byte) (map[string]string, error) {
	cited := make(map[string]string)
	var pending string
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if m := citationPattern.FindStringSubmatch(line); m != nil {
			pending = m[1]
			continue
		}
		if m := productionPattern.FindStringSubmatch(line); m != nil && pending != "" {
			cited[m[1]] = pending
		}
		pending = ""
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan grammar: %w", err)
	}
	return cited, nil
}

// ParseCitation splits "A.9.3 Identifiers DEF: 70" into its section header
// and definition index.
func ParseCitation(s string) (section string, def int, err error) {
	section, index, ok := strings.Cut(s, " DEF: ")
	if !ok {
		return "", 0, fmt.Errorf("citation %q: missing DEF", s)
	}
	def, err = strconv.Atoi(index)
	if err != nil {
		return "", 0, fmt.Errorf("citation %q: %w", s, err)
	}
	return section, def, nil
}
