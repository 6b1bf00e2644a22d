// Package classify partitions the link failures of a crawl report into
// errors, warnings and ignored links according to user-selected codes.
package classify

import (
	"sort"
	"strings"
)

// Wildcard is the selector value that matches every code.
const Wildcard = "all"

// Selector selects link failures by their code: the first token of the
// crawler's error text. The zero value selects nothing.
type Selector struct {
	all   bool
	codes map[string]struct{}
}

// All returns the wildcard selector.
func All() Selector {
	return Selector{all: true}
}

// Codes returns a selector matching exactly the given codes.
func Codes(codes ...string) Selector {
	s := Selector{codes: make(map[string]struct{}, len(codes))}
	for _, c := range codes {
		s.codes[c] = struct{}{}
	}
	return s
}

// ParseSelector builds a selector from command-line values. No values yield
// the empty selector; a first value of "all" yields the wildcard.
func ParseSelector(values []string) Selector {
	if len(values) == 0 {
		return Selector{}
	}
	if values[0] == Wildcard {
		return All()
	}
	return Codes(values...)
}

// IsAll reports whether s is the wildcard.
func (s Selector) IsAll() bool {
	return s.all
}

// IsEmpty reports whether s selects nothing.
func (s Selector) IsEmpty() bool {
	return !s.all && len(s.codes) == 0
}

// Contains reports whether code is in the explicit code set. It compares
// whole codes, never substrings, and is false for the wildcard.
func (s Selector) Contains(code string) bool {
	_, ok := s.codes[code]
	return ok
}

// Matches reports whether s selects code, either as wildcard or by set membership.
func (s Selector) Matches(code string) bool {
	return s.all || s.Contains(code)
}

func (s Selector) String() string {
	if s.all {
		return Wildcard
	}
	codes := make([]string, 0, len(s.codes))
	for c := range s.codes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return strings.Join(codes, ",")
}
