package bank

import (
	"fmt"
	"strings"
	"time"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Registry is an ordered, immutable set of rules. Earlier rules win ties,
// so a fallback must be declared after the formats it could shadow.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry creates a registry from rules in declaration order. Panics on
// duplicate bank ID.
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for _, rule := range rules {
		id := rule.BankID()
		if _, ok := r.index[id]; ok {
			panic("duplicate bank rule: " + id)
		}
		r.index[id] = len(r.rules)
		r.rules = append(r.rules, rule)
	}
	return r
}

// DefaultRegistry returns the built-in rules. The order is load-bearing:
// CBE's actor pattern also matches the "YOUR ACCOUNT ..." formats of Dashen
// and CommercialBankOfEthiopia, and wins because it is first.
func DefaultRegistry(loc *time.Location) *Registry {
	return NewRegistry(
		NewCBERule(loc),
		NewDashenRule(loc),
		NewAwashRule(loc),
		NewGenericRule(loc),
		NewCommercialBankOfEthiopiaRule(loc),
	)
}

// Rules returns the rules in declaration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of rules.
func (r *Registry) Len() int { return len(r.rules) }

// Has reports whether bankID names a registered rule.
func (r *Registry) Has(bankID string) bool {
	_, ok := r.index[bankID]
	return ok
}

// Get returns the rule for bankID, or nil.
func (r *Registry) Get(bankID string) Rule {
	i, ok := r.index[bankID]
	if !ok {
		return nil
	}
	return r.rules[i]
}

// BankIDs returns the bank IDs in declaration order.
func (r *Registry) BankIDs() []string {
	ids := make([]string, len(r.rules))
	for i, rule := range r.rules {
		ids[i] = rule.BankID()
	}
	return ids
}

// Subset returns a registry with only the named banks, keeping declaration
// order. Names match case-insensitively. An empty list returns r.
func (r *Registry) Subset(bankIDs ...string) (*Registry, error) {
	if len(bankIDs) == 0 {
		return r, nil
	}

	want := make(map[string]bool, len(bankIDs))
	for _, id := range bankIDs {
		key := strings.ToLower(strings.TrimSpace(id))
		found := false
		for _, rule := range r.rules {
			if strings.ToLower(rule.BankID()) == key {
				found = true
				break
			}
		}
		if !found {
			if guess := r.closest(key); guess != "" {
				return nil, fmt.Errorf("unknown bank %q (did you mean %q?)", id, guess)
			}
			return nil, fmt.Errorf("unknown bank %q", id)
		}
		want[key] = true
	}

	var kept []Rule
	for _, rule := range r.rules {
		if want[strings.ToLower(rule.BankID())] {
			kept = append(kept, rule)
		}
	}
	return NewRegistry(kept...), nil
}

// maxSuggestDistance bounds how far a typo may be from a suggested bank ID.
const maxSuggestDistance = 2

func (r *Registry) closest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, rule := range r.rules {
		d := levenshtein.DistanceForStrings([]rune(name), []rune(strings.ToLower(rule.BankID())), levenshtein.DefaultOptions)
		if d < bestDist {
			best, bestDist = rule.BankID(), d
		}
	}
	return best
}
