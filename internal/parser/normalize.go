// Package parser turns raw bank SMS bodies into validated, deduplicated
// transactions using the rules in package bank.
package parser

import "strings"

// Normalize uppercases s, collapses whitespace runs to a single space and
// trims the ends. Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
