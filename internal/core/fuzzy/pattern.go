// Package fuzzy scores lines against fzf-style queries and keeps the state of
// the fuzzy line picker.
package fuzzy

import (
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// query syntax:
//   "foo"   fuzzy subsequence
//   "'foo"  exact substring
//   "a b"   every space-separated term must match

func init() {
	algo.Init("default")
}

var (
	slab      = util.MakeSlab(100*1024, 2048)
	slabMutex sync.Mutex
)

type term struct {
	runes         []rune
	exact         bool
	caseSensitive bool
}

// Pattern is a parsed query. Parse once, score many.
type Pattern struct {
	terms []term
}

// Parse splits raw into terms. Upper case in a term makes that term case sensitive.
func Parse(raw string) Pattern {
	var p Pattern
	for _, tok := range strings.Fields(raw) {
		t := term{}
		if len(tok) > 1 && tok[0] == '\'' {
			t.exact = true
			tok = tok[1:]
		}
		t.caseSensitive = strings.IndexFunc(tok, unicode.IsUpper) >= 0
		if !t.caseSensitive {
			tok = strings.ToLower(tok)
		}
		t.runes = []rune(tok)
		p.terms = append(p.terms, t)
	}
	return p
}

// Empty reports whether the pattern matches everything.
func (p Pattern) Empty() bool { return len(p.terms) == 0 }

// Score returns the summed score of all terms, and false if any term misses.
func (p Pattern) Score(candidate string) (int, bool) {
	if len(p.terms) == 0 {
		return 0, true
	}
	chars := util.ToChars([]byte(candidate))

	slabMutex.Lock()
	defer slabMutex.Unlock()
	total := 0
	for _, t := range p.terms {
		fn := algo.FuzzyMatchV2
		if t.exact {
			fn = algo.ExactMatchNaive
		}
		result, _ := fn(t.caseSensitive, false, true, &chars, t.runes, false, slab)
		if result.Start < 0 {
			return 0, false
		}
		total += result.Score
	}
	return total, true
}

// Match reports whether candidate matches query.
func Match(query, candidate string) bool {
	_, ok := Parse(query).Score(candidate)
	return ok
}
