package parser

import "github.com/cleared-dev/smsledger/internal/model"

// Dedupe drops every transaction whose (amount, occurredAt, narrative) key
// was already seen, keeping first occurrences in input order.
func Dedupe(txns []model.ParsedTransaction) []model.ParsedTransaction {
	seen := make(map[model.DedupKey]bool, len(txns))
	out := make([]model.ParsedTransaction, 0, len(txns))
	for _, t := range txns {
		k := t.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}
